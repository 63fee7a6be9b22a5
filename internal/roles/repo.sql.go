package roles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vigil-auth/vigil/internal/shared"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	FindByName(ctx context.Context, name string) (*Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	Ensure(ctx context.Context, name string, permissions []string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByName fetches a role by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*Role, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT name, permissions, created_at, updated_at FROM roles WHERE name = $1`, name)
	var role Role
	if err := row.Scan(&role.Name, &role.Permissions, &role.CreatedAt, &role.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// ListRoles returns all roles ordered by name.
func (r *Repository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, permissions, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.Name, &role.Permissions, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Ensure upserts a role with the given permission set.
func (r *Repository) Ensure(ctx context.Context, name string, permissions []string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO roles (name, permissions, created_at, updated_at)
		 VALUES ($1, $2, now(), now())
		 ON CONFLICT (name) DO UPDATE SET permissions = EXCLUDED.permissions, updated_at = now()`,
		name, permissions)
	return err
}

var _ RepositoryPort = (*Repository)(nil)
