package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vigil-auth/vigil/internal/platform/db"
	"github.com/vigil-auth/vigil/internal/shared"
)

// ErrUsernameTaken indicates a unique constraint violation on username.
var ErrUsernameTaken = errors.New("users: username already taken")

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByUsername fetches a user with roles and password hash.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, roles, locked, created_at, updated_at
		 FROM users WHERE username = $1`, username)
	var user User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Roles, &user.Locked, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users ordered by id, without password hashes.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, roles, locked, created_at, updated_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Username, &user.Roles, &user.Locked, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Create inserts a new user.
func (r *Repository) Create(ctx context.Context, username, passwordHash string, roles []string, locked bool) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, roles, locked, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 RETURNING id, username, password_hash, roles, locked, created_at, updated_at`,
		username, passwordHash, roles, locked)
	var user User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Roles, &user.Locked, &user.CreatedAt, &user.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

// UpdateRoles replaces a user's role assignment. Locked accounts are
// refused inside the same transaction that reads the flag.
func (r *Repository) UpdateRoles(ctx context.Context, username string, roles []string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var locked bool
		err := tx.QueryRow(ctx, `SELECT locked FROM users WHERE username = $1 FOR UPDATE`, username).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.ErrNotFound
			}
			return err
		}
		if locked {
			return shared.ErrLockedAccount
		}
		_, err = tx.Exec(ctx, `UPDATE users SET roles = $2, updated_at = now() WHERE username = $1`, username, roles)
		return err
	})
}

var _ RepositoryPort = (*Repository)(nil)
