package authz

import (
	"context"
	"errors"

	"github.com/vigil-auth/vigil/internal/shared"
)

// Role is a named permission bundle as served by the role-store.
type Role struct {
	Name        string
	Permissions []string
}

// GuestRoleName is the built-in role substituted for identities without
// any role assignment.
const GuestRoleName = "guest"

// RoleStore is the read-only collaborator the resolver depends on.
// Concurrent use and lookup timeouts are the store's own responsibility.
type RoleStore interface {
	FindByName(ctx context.Context, name string) (Role, error)
}

// Resolver computes effective permission sets from role assignments.
type Resolver struct {
	roles RoleStore
}

// NewResolver constructs a Resolver over the given role-store.
func NewResolver(roles RoleStore) *Resolver {
	return &Resolver{roles: roles}
}

// Resolve unions the permission sets of every role held by the identity.
// An empty role list falls back to the built-in guest role. A role the
// store cannot find, or a role carrying a permission outside the
// vocabulary, is a resolution error; an empty set is never substituted
// silently.
func (r *Resolver) Resolve(ctx context.Context, identity Identity) (PermissionSet, error) {
	names := identity.Roles
	if len(names) == 0 {
		names = []string{GuestRoleName}
	}

	effective := make(PermissionSet)
	for _, name := range names {
		role, err := r.roles.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, &ResolutionError{Role: name, Reason: "role does not exist"}
			}
			return nil, &ResolutionError{Role: name, Reason: "role lookup failed", Err: err}
		}
		for _, raw := range role.Permissions {
			perm, err := ParsePermission(raw)
			if err != nil {
				return nil, &ResolutionError{Role: name, Reason: "permission outside vocabulary: " + raw}
			}
			effective.Add(perm)
		}
	}
	return effective, nil
}
