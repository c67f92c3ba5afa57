package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

// MessageRepository handles message ("mensagem") data access.
type MessageRepository struct {
	db DBTX
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: pool}
}

// WithTx returns a copy of the repository bound to tx.
func (r *MessageRepository) WithTx(tx pgx.Tx) *MessageRepository {
	return &MessageRepository{db: tx}
}

// Create inserts a message and returns its ID.
func (r *MessageRepository) Create(ctx context.Context, schoolID int, m *model.SendMessageRequest, sendAt time.Time, status model.MessageStatus) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO mensagens (escola_id, serie_id, assunto, conteudo, prioridade, categoria,
			data_envio, tipo_destinatario, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		schoolID, m.ClassID, m.Subject, m.Body, m.Priority, m.Category,
		sendAt, m.RecipientType, status,
	).Scan(&id)
	return id, err
}

// AddRecipient addresses the message to one student.
func (r *MessageRepository) AddRecipient(ctx context.Context, messageID, studentID int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO mensagem_destinatarios (mensagem_id, aluno_id) VALUES ($1, $2)`, messageID, studentID)
	return err
}
