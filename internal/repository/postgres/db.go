// Package postgres implements the repositories on PostgreSQL using pgx.
package postgres

import (
	"alcyxob/gymbuddy/internal/repository"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// NewDBPool parses connString and opens a connection pool.
func NewDBPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return db, nil
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// NewStore returns a repository.Store whose repositories share the pool.
func NewStore(db *pgxpool.Pool) repository.Store {
	return repository.Store{
		Users:    NewUserRepo(db),
		Partners: NewPartnerRepo(db),
		Workouts: NewWorkoutRepo(db),
		Exercise: NewExerciseRepo(db),
		Sets:     NewExerciseSetRepo(db),
		Weeks:    NewWeeklyWorkoutRepo(db),
		Catalog:  NewCatalogRepo(db),
	}
}

// https://www.postgresql.org/docs/current/errcodes-appendix.html

// IsUniqueViolationError checks if the error is a unique violation error
func IsUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// writeErr maps unique violations onto repository.ErrDuplicate.
func writeErr(err error) error {
	if IsUniqueViolationError(err) {
		return repository.ErrDuplicate
	}
	return err
}

// rowErr maps pgx.ErrNoRows onto repository.ErrNotFound.
func rowErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// escapeLike escapes the LIKE wildcards in s.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
