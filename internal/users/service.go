package users

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/vigil-auth/vigil/internal/authz"
)

// Service handles user business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// NormalizeUsername folds a username to its canonical form: NFC
// normalised and lower-cased. All lookups and inserts go through this.
func NormalizeUsername(username string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(username)))
}

// Identity builds the validated identity snapshot for a user. The
// password hash never crosses this boundary.
func Identity(user *User) authz.Identity {
	roles := make([]string, len(user.Roles))
	copy(roles, user.Roles)
	return authz.Identity{
		ID:       user.ID,
		Username: user.Username,
		Roles:    roles,
		Locked:   user.Locked,
	}
}

// FindByUsername implements the token service's user-store collaborator.
// The hash is only returned when explicitly requested.
func (s *Service) FindByUsername(ctx context.Context, username string, includeHash bool) (authz.Identity, string, error) {
	user, err := s.repo.FindByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		return authz.Identity{}, "", err
	}
	hash := ""
	if includeHash {
		hash = user.PasswordHash
	}
	return Identity(user), hash, nil
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// Register creates an ordinary account holding the default user role.
func (s *Service) Register(ctx context.Context, username, passwordHash string) (*User, error) {
	return s.repo.Create(ctx, NormalizeUsername(username), passwordHash, []string{"user"}, false)
}

// UpdateRoles replaces a user's role assignment. The repository refuses
// the change for locked accounts.
func (s *Service) UpdateRoles(ctx context.Context, username string, roles []string) error {
	return s.repo.UpdateRoles(ctx, NormalizeUsername(username), roles)
}
