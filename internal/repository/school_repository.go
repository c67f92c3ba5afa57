package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

const schoolColumns = `id, nome, cnpj, email, senha_hash, telefone, endereco, cidade, estado, cep,
	COALESCE(tipo_escola, ''), diretor_nome, diretor_email, diretor_telefone, quantidade_alunos,
	status, created_at, updated_at`

// SchoolRepository handles school data access.
type SchoolRepository struct {
	db DBTX
}

// NewSchoolRepository creates a new SchoolRepository.
func NewSchoolRepository(pool *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{db: pool}
}

// WithTx returns a copy of the repository bound to tx.
func (r *SchoolRepository) WithTx(tx pgx.Tx) *SchoolRepository {
	return &SchoolRepository{db: tx}
}

// Create inserts a new school and fills its generated fields.
// Returns ErrDuplicateEmail or ErrDuplicateCNPJ on a unique violation.
func (r *SchoolRepository) Create(ctx context.Context, s *model.School) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO escolas (nome, cnpj, email, senha_hash, telefone, endereco, cidade, estado, cep,
			tipo_escola, diretor_nome, diretor_email, diretor_telefone, quantidade_alunos, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13, $14, $15)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.TaxID, s.Email, s.PasswordHash, s.Phone, s.Address, s.City, s.State, s.PostalCode,
		s.SchoolType, s.DirectorName, s.DirectorEmail, s.DirectorPhone, s.StudentCount, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return mapSchoolUnique(err)
}

// GetByID retrieves a school by ID.
func (r *SchoolRepository) GetByID(ctx context.Context, id int) (*model.School, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT `+schoolColumns+` FROM escolas WHERE id = $1`, id))
}

// GetByEmail retrieves a school by its login email.
func (r *SchoolRepository) GetByEmail(ctx context.Context, email string) (*model.School, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT `+schoolColumns+` FROM escolas WHERE email = $1`, email))
}

func (r *SchoolRepository) scanOne(row pgx.Row) (*model.School, error) {
	s := &model.School{}
	err := row.Scan(&s.ID, &s.Name, &s.TaxID, &s.Email, &s.PasswordHash, &s.Phone, &s.Address,
		&s.City, &s.State, &s.PostalCode, &s.SchoolType, &s.DirectorName, &s.DirectorEmail,
		&s.DirectorPhone, &s.StudentCount, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

// UpdatePassword replaces the stored hash. Returns ErrNotFound if no row matched.
func (r *SchoolRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE escolas SET senha_hash = $1, updated_at = NOW() WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive returns id and name of every active school, ordered by name.
func (r *SchoolRepository) ListActive(ctx context.Context) ([]model.SchoolListItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, nome FROM escolas WHERE status = $1 ORDER BY nome`, model.SchoolStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schools := []model.SchoolListItem{}
	for rows.Next() {
		var s model.SchoolListItem
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}
