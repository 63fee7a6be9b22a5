package pref

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vigil-auth/vigil/internal/shared"
)

// RepositoryPort defines data access methods for system preferences.
type RepositoryPort interface {
	Get(ctx context.Context, key Key) (string, error)
	Set(ctx context.Context, key Key, value string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches a stored preference value.
func (r *Repository) Get(ctx context.Context, key Key) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM sys_preferences WHERE key = $1`, string(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set upserts a preference value.
func (r *Repository) Set(ctx context.Context, key Key, value string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sys_preferences (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		string(key), value)
	return err
}

var _ RepositoryPort = (*Repository)(nil)
