package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

// ClassRepository handles class ("série") data access.
type ClassRepository struct {
	db DBTX
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: pool}
}

// WithTx returns a copy of the repository bound to tx.
func (r *ClassRepository) WithTx(tx pgx.Tx) *ClassRepository {
	return &ClassRepository{db: tx}
}

// Create inserts a new active class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO series (escola_id, nome, ativo, ano_letivo)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		c.SchoolID, c.Name, c.Active, c.AcademicYear,
	).Scan(&c.ID, &c.CreatedAt)
}

// ListActiveWithCounts returns the school's active classes with their
// number of active enrolled students, in creation order.
func (r *ClassRepository) ListActiveWithCounts(ctx context.Context, schoolID int) ([]model.ClassSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.nome, s.ano_letivo,
			COUNT(u.id) FILTER (WHERE u.tipo = $2 AND u.status = $3)
		 FROM series s
		 LEFT JOIN usuarios u ON u.serie_id = s.id
		 WHERE s.escola_id = $1 AND s.ativo
		 GROUP BY s.id
		 ORDER BY s.id`,
		schoolID, model.RoleStudent, model.UserStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []model.ClassSummary{}
	for rows.Next() {
		var c model.ClassSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.AcademicYear, &c.StudentsCount); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
