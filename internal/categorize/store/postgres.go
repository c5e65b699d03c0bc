package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/anindyar/kasbon/internal/ledger"
)

const schema = `
CREATE TABLE IF NOT EXISTS category_mappings (
	id         BIGSERIAL PRIMARY KEY,
	pattern    TEXT NOT NULL,
	category   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type Postgres struct {
	db *sql.DB
}

func NewPostgres(ctx context.Context, db *sql.DB) (*Postgres, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("creating category_mappings table: %w", err)
	}

	return &Postgres{db: db}, nil
}

func (s *Postgres) FindMatch(ctx context.Context, description string) (ledger.ExpenseCategory, error) {
	query := `
		SELECT category
		FROM category_mappings
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, description).Scan(&category)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return ledger.ExpenseCategory(category), nil
}

func (s *Postgres) CreateMapping(ctx context.Context, pattern string, category ledger.ExpenseCategory) error {
	query := `
		INSERT INTO category_mappings (pattern, category)
		VALUES ($1, $2)
	`

	if _, err := s.db.ExecContext(ctx, query, pattern, string(category)); err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
