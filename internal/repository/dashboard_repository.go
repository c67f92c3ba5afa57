package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

// recentActivityLimit bounds the dashboard activity feed.
const recentActivityLimit = 10

// DashboardRepository handles school dashboard data access.
type DashboardRepository struct {
	db DBTX
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{db: pool}
}

// GetStats retrieves the six dashboard counters in a single round trip.
func (r *DashboardRepository) GetStats(ctx context.Context, schoolID int) (*model.DashboardStats, error) {
	st := &model.DashboardStats{}
	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM usuarios u JOIN series s ON s.id = u.serie_id
			 WHERE s.escola_id = $1 AND u.tipo = 'crianca' AND u.status = 'ativo'),
			(SELECT COUNT(*) FROM quizzes WHERE escola_id = $1 AND status = 'ativo'),
			(SELECT COUNT(*) FROM tarefas WHERE escola_id = $1 AND status = 'ativo'),
			(SELECT COUNT(*) FROM mensagens WHERE escola_id = $1 AND status = 'enviada'),
			(SELECT COUNT(*) FROM quizzes WHERE escola_id = $1 AND status = 'pendente'),
			(SELECT COUNT(*) FROM tarefas WHERE escola_id = $1 AND status = 'pendente')`,
		schoolID,
	).Scan(&st.TotalStudents, &st.ActiveQuizzes, &st.ActiveTasks, &st.MessagesSent,
		&st.PendingQuizzes, &st.PendingTasks)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// GetRecentActivities returns the latest quizzes, tasks and messages of the
// school merged into one feed, newest first.
func (r *DashboardRepository) GetRecentActivities(ctx context.Context, schoolID int) ([]model.RecentActivity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT tipo, id, titulo, serie, status, created_at FROM (
			SELECT 'quiz' AS tipo, q.id, q.titulo, s.nome AS serie, q.status, q.created_at
			FROM quizzes q LEFT JOIN series s ON s.id = q.serie_id
			WHERE q.escola_id = $1
			UNION ALL
			SELECT 'tarefa', t.id, t.titulo, s.nome, t.status, t.created_at
			FROM tarefas t LEFT JOIN series s ON s.id = t.serie_id
			WHERE t.escola_id = $1
			UNION ALL
			SELECT 'mensagem', m.id, m.assunto, s.nome, m.status, m.created_at
			FROM mensagens m LEFT JOIN series s ON s.id = m.serie_id
			WHERE m.escola_id = $1
		 ) a
		 ORDER BY created_at DESC
		 LIMIT $2`,
		schoolID, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []model.RecentActivity{}
	for rows.Next() {
		var a model.RecentActivity
		if err := rows.Scan(&a.Kind, &a.ID, &a.Title, &a.ClassName, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
