// Package store persists appointments, issues and notifications in Postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campus-portal-api/internal/apperr"
	"campus-portal-api/internal/workflow"
)

var _ workflow.Repository = (*Store)(nil)

// Store is the pgx-backed repository. Every table carries a seq column so
// lists come back in insertion order; upserts leave seq untouched.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate applies the schema file at path. The statements are idempotent.
func (s *Store) Migrate(ctx context.Context, path string) error {
	migration, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := s.pool.Exec(ctx, string(migration)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func notFound(err error, entity, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(entity, id)
	}
	return err
}

func (s *Store) deleteByID(ctx context.Context, table, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
