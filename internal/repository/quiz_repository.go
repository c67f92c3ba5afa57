package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

// QuizRepository handles quiz data access.
type QuizRepository struct {
	db DBTX
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{db: pool}
}

// WithTx returns a copy of the repository bound to tx.
func (r *QuizRepository) WithTx(tx pgx.Tx) *QuizRepository {
	return &QuizRepository{db: tx}
}

// Create inserts the quiz header row and returns its ID.
func (r *QuizRepository) Create(ctx context.Context, schoolID int, q *model.CreateQuizRequest, status model.ContentStatus) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO quizzes (escola_id, serie_id, titulo, descricao, materia, dificuldade, tempo_limite,
			pontos_por_questao, pontuacao_minima, tentativas_permitidas, mostrar_resultado,
			data_inicio, data_fim, tipo_destinatario, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id`,
		schoolID, q.ClassID, q.Title, q.Description, q.Subject, q.Difficulty, q.TimeLimit,
		q.PointsPerQuestion, q.MinimumScore, q.AttemptsAllowed, q.ShowResult,
		q.StartsAt.Ptr(), q.EndsAt.Ptr(), q.RecipientType, status,
	).Scan(&id)
	return id, err
}

// AddQuestion inserts one question at the given position.
func (r *QuizRepository) AddQuestion(ctx context.Context, quizID, position int, q model.QuizQuestion) error {
	var options interface{}
	if len(q.Options) > 0 {
		options = []byte(q.Options)
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO quiz_perguntas (quiz_id, ordem, enunciado, tipo, opcoes, resposta_correta, explicacao)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)`,
		quizID, position, q.Statement, q.Type, options, q.CorrectAnswer, q.Explanation,
	)
	return err
}

// AddRecipient assigns the quiz to one student.
func (r *QuizRepository) AddRecipient(ctx context.Context, quizID, studentID int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO quiz_destinatarios (quiz_id, aluno_id) VALUES ($1, $2)`, quizID, studentID)
	return err
}
