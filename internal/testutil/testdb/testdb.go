//go:build integration || e2e

// Package testdb starts a disposable PostgreSQL container with the schema applied.
package testdb

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/database"
)

// tables lists every table owned by the schema, children first.
var tables = []string{
	"mensagem_destinatarios", "mensagens",
	"tarefa_entregas", "tarefa_destinatarios", "tarefas",
	"quiz_resultados", "quiz_destinatarios", "quiz_perguntas", "quizzes",
	"usuarios", "series", "escolas",
}

// DBHandle owns a running container and a pool connected to it.
type DBHandle struct {
	Pool *pgxpool.Pool
	URL  string
	stop func(context.Context) error
}

// Close releases the pool and terminates the container.
func (h *DBHandle) Close() {
	if h.Pool != nil {
		h.Pool.Close()
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
}

// Reset empties every table and restarts identity sequences.
func (h *DBHandle) Reset(ctx context.Context) error {
	q := "TRUNCATE "
	for i, t := range tables {
		if i > 0 {
			q += ", "
		}
		q += t
	}
	_, err := h.Pool.Exec(ctx, q+" RESTART IDENTITY CASCADE")
	return err
}

// Start runs postgres:17-alpine, applies the embedded migrations and
// connects a pool.
func Start(ctx context.Context) (*DBHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:17-alpine"),
		postgres.WithDatabase("banco_infantil"),
		postgres.WithUsername("banco"),
		postgres.WithPassword("banco"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(context.Background())
		return nil, err
	}

	if err := database.MigrateUp(uri); err != nil {
		_ = pg.Terminate(context.Background())
		return nil, err
	}

	pool, err := database.Connect(ctx, uri, 8)
	if err != nil {
		_ = pg.Terminate(context.Background())
		return nil, err
	}

	return &DBHandle{Pool: pool, URL: uri, stop: func(ctx context.Context) error { return pg.Terminate(ctx) }}, nil
}
