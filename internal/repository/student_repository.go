package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

// StudentRepository handles access to students of a school. Enrollment
// writes exist for operator tooling; the API only reads.
type StudentRepository struct {
	db DBTX
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: pool}
}

// WithTx returns a copy of the repository bound to tx.
func (r *StudentRepository) WithTx(tx pgx.Tx) *StudentRepository {
	return &StudentRepository{db: tx}
}

// Enroll inserts an active student into classID. When guardian is non-nil
// its row is inserted first and linked. Run inside WithTx to keep the pair atomic.
func (r *StudentRepository) Enroll(ctx context.Context, classID int, name string, email *string, guardian *model.Guardian) (int, error) {
	var guardianID *int
	if guardian != nil {
		var id int
		err := r.db.QueryRow(ctx,
			`INSERT INTO usuarios (nome, email, telefone, tipo, status)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			guardian.Name, guardian.Email, guardian.Phone, model.RoleGuardian, model.UserStatusActive,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert guardian: %w", err)
		}
		guardianID = &id
	}

	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO usuarios (nome, email, tipo, serie_id, responsavel_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		name, email, model.RoleStudent, classID, guardianID, model.UserStatusActive,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert student: %w", err)
	}
	return id, nil
}

// ListBySchool returns active students enrolled in any of the school's classes.
func (r *StudentRepository) ListBySchool(ctx context.Context, schoolID int) ([]model.Student, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.nome, u.email, s.id, s.nome
		 FROM usuarios u
		 JOIN series s ON s.id = u.serie_id
		 WHERE s.escola_id = $1 AND u.tipo = $2 AND u.status = $3
		 ORDER BY s.nome, u.nome`,
		schoolID, model.RoleStudent, model.UserStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.ClassID, &s.ClassName); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// ListDetailedBySchool returns the same population as ListBySchool with
// progress aggregates and guardian contact.
func (r *StudentRepository) ListDetailedBySchool(ctx context.Context, schoolID int) ([]model.StudentDetail, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.nome, u.email, s.id, s.nome,
			COALESCE((
				SELECT SUM(t.pontos_recompensa) FROM tarefas t
				WHERE t.id IN (
					SELECT te.tarefa_id FROM tarefa_entregas te
					WHERE te.aluno_id = u.id AND te.status = 'concluida'
				)
			), 0)::int,
			(SELECT COUNT(DISTINCT te.tarefa_id) FROM tarefa_entregas te
			 WHERE te.aluno_id = u.id AND te.status = 'concluida'),
			(SELECT COUNT(DISTINCT qr.quiz_id) FROM quiz_resultados qr
			 WHERE qr.aluno_id = u.id AND qr.concluido_em IS NOT NULL),
			r.nome, r.email, r.telefone
		 FROM usuarios u
		 JOIN series s ON s.id = u.serie_id
		 LEFT JOIN usuarios r ON r.id = u.responsavel_id
		 WHERE s.escola_id = $1 AND u.tipo = $2 AND u.status = $3
		 ORDER BY s.nome, u.nome`,
		schoolID, model.RoleStudent, model.UserStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.StudentDetail{}
	for rows.Next() {
		var (
			s             model.StudentDetail
			guardianName  *string
			guardianEmail *string
			guardianPhone *string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.ClassID, &s.ClassName,
			&s.Points, &s.TasksCompleted, &s.QuizzesTaken,
			&guardianName, &guardianEmail, &guardianPhone); err != nil {
			return nil, err
		}
		if guardianName != nil {
			s.Guardian = &model.Guardian{Name: *guardianName, Email: guardianEmail, Phone: guardianPhone}
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
