package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx, so repositories run the
// same queries inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Common repository errors.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("school with this email already exists")
	ErrDuplicateCNPJ  = errors.New("school with this cnpj already exists")
)

const pgUniqueViolation = "23505"

// Constraint names declared in the schema migrations.
const (
	constraintSchoolEmail = "escolas_email_key"
	constraintSchoolCNPJ  = "escolas_cnpj_key"
)

// mapSchoolUnique turns a unique violation on the escolas table into the
// matching sentinel. Other errors pass through unchanged.
func mapSchoolUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case constraintSchoolEmail:
		return ErrDuplicateEmail
	case constraintSchoolCNPJ:
		return ErrDuplicateCNPJ
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
