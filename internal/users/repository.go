package users

import "context"

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	Create(ctx context.Context, username, passwordHash string, roles []string, locked bool) (*User, error)
	UpdateRoles(ctx context.Context, username string, roles []string) error
}
