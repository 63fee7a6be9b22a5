package roles

import (
	"context"

	"github.com/vigil-auth/vigil/internal/authz"
)

// Service handles role business logic and adapts the repository to the
// authorization engine's role-store contract.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// FindByName implements authz.RoleStore.
func (s *Service) FindByName(ctx context.Context, name string) (authz.Role, error) {
	role, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return authz.Role{}, err
	}
	return authz.Role{Name: role.Name, Permissions: role.Permissions}, nil
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// Ensure upserts a role definition.
func (s *Service) Ensure(ctx context.Context, name string, permissions []string) error {
	return s.repo.Ensure(ctx, name, permissions)
}

var _ authz.RoleStore = (*Service)(nil)
