package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

// TaskRepository handles task ("tarefa") data access.
type TaskRepository struct {
	db DBTX
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: pool}
}

// WithTx returns a copy of the repository bound to tx.
func (r *TaskRepository) WithTx(tx pgx.Tx) *TaskRepository {
	return &TaskRepository{db: tx}
}

// Create inserts a task and returns its ID.
func (r *TaskRepository) Create(ctx context.Context, schoolID int, t *model.CreateTaskRequest, status model.ContentStatus) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO tarefas (escola_id, serie_id, titulo, descricao, materia, pontos_recompensa,
			data_entrega, permitir_reenvio, max_reenvios, tipo_destinatario, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		schoolID, t.ClassID, t.Title, t.Description, t.Subject, t.RewardPoints,
		t.DueAt.Time, t.AllowResubmit, t.MaxResubmits, t.RecipientType, status,
	).Scan(&id)
	return id, err
}

// AddRecipient assigns the task to one student.
func (r *TaskRepository) AddRecipient(ctx context.Context, taskID, studentID int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tarefa_destinatarios (tarefa_id, aluno_id) VALUES ($1, $2)`, taskID, studentID)
	return err
}
