package repository

import (
	"context"
	"fmt"

	"goldapple/parser/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// Executor is the part of *pgxpool.Pool the repository needs.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// ProductRepository mirrors written rows into PostgreSQL. It satisfies
// storage.RowWriter so it can sit next to the CSV file.
type ProductRepository interface {
	EnsureSchema(ctx context.Context) error
	WriteRow(ctx context.Context, row *domain.OutputRow) error
	Close() error
}

type productRepository struct {
	db    Executor
	runID string
}

func NewProductRepository(db Executor, runID string) ProductRepository {
	return &productRepository{
		db:    db,
		runID: runID,
	}
}

func (r *productRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS products (
		id         BIGSERIAL   PRIMARY KEY,
		run_id     TEXT        NOT NULL,
		link       TEXT        NOT NULL,
		data       JSONB       NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}
	return nil
}

// WriteRow inserts the row as-is. There is no dedup: a second run adds a
// second copy under its own run_id.
func (r *productRepository) WriteRow(ctx context.Context, row *domain.OutputRow) error {
	query := `
	INSERT INTO products (run_id, link, data)
	VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, r.runID, row.Link, row)
	if err != nil {
		return fmt.Errorf("failed to save product %s: %w", row.Link, err)
	}

	return nil
}

// Close is a no-op, the pool belongs to the container.
func (r *productRepository) Close() error {
	return nil
}
