package authz

import (
	"fmt"
	"strings"
)

// Requirement is the permission set an operation declares as necessary.
// The zero value means "nothing declared", which the extractor treats as
// an authoring bug. An empty Permissions list on a declared requirement
// means "authenticated, no specific permission needed", which is distinct.
type Requirement struct {
	Permissions []Permission
	// NoAuth bypasses authorization entirely. It must be declared
	// explicitly per operation and is never inferred.
	NoAuth bool

	declared bool
}

// Require declares a requirement for the given permissions.
func Require(perms ...Permission) Requirement {
	return Requirement{Permissions: perms, declared: true}
}

// NoAuthRequired declares the explicit authorization bypass marker.
func NoAuthRequired() Requirement {
	return Requirement{NoAuth: true, declared: true}
}

// Registry maps operation identifiers to their declared requirements.
// It is assembled at process start and immutable afterwards; Freeze
// enforces that.
type Registry struct {
	operations map[string]Requirement
	groups     map[string]Requirement
	frozen     bool
}

// NewRegistry creates an empty requirement registry.
func NewRegistry() *Registry {
	return &Registry{
		operations: make(map[string]Requirement),
		groups:     make(map[string]Requirement),
	}
}

// RegisterOperation declares the requirement for a single operation.
// Operation IDs follow the "group.name" convention.
func (r *Registry) RegisterOperation(operation string, req Requirement) error {
	if r.frozen {
		return fmt.Errorf("authz: registry is frozen, cannot register %q", operation)
	}
	if operation == "" {
		return fmt.Errorf("authz: operation id must not be empty")
	}
	if err := validateRequirement(operation, req); err != nil {
		return err
	}
	if _, exists := r.operations[operation]; exists {
		return fmt.Errorf("authz: operation %q registered twice", operation)
	}
	r.operations[operation] = req
	return nil
}

// RegisterGroup declares a fallback requirement for every operation whose
// ID is prefixed "group.". Operation-level declarations take precedence.
func (r *Registry) RegisterGroup(group string, req Requirement) error {
	if r.frozen {
		return fmt.Errorf("authz: registry is frozen, cannot register group %q", group)
	}
	if group == "" {
		return fmt.Errorf("authz: group id must not be empty")
	}
	if err := validateRequirement(group, req); err != nil {
		return err
	}
	if _, exists := r.groups[group]; exists {
		return fmt.Errorf("authz: group %q registered twice", group)
	}
	r.groups[group] = req
	return nil
}

// Freeze marks the registry immutable. Further registrations fail.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Extract returns the declared requirement for an operation, preferring
// the operation scope over its group scope. An operation declared at
// neither scope is an extraction error: a missing declaration denies all
// access rather than silently allowing it.
func (r *Registry) Extract(operation string) (Requirement, error) {
	if req, ok := r.operations[operation]; ok {
		return req, nil
	}
	if group := operationGroup(operation); group != "" {
		if req, ok := r.groups[group]; ok {
			return req, nil
		}
	}
	return Requirement{}, &ExtractionError{
		Operation: operation,
		Reason:    "no permission requirement declared, denying access",
	}
}

func validateRequirement(scope string, req Requirement) error {
	if !req.declared {
		return fmt.Errorf("authz: %q: requirement must be built with Require or NoAuthRequired", scope)
	}
	if req.NoAuth && len(req.Permissions) > 0 {
		return fmt.Errorf("authz: %q: no-auth marker cannot carry permissions", scope)
	}
	for _, p := range req.Permissions {
		if !p.Known() {
			return fmt.Errorf("authz: %q: unknown permission %q in requirement", scope, p)
		}
	}
	return nil
}

func operationGroup(operation string) string {
	if idx := strings.LastIndex(operation, "."); idx > 0 {
		return operation[:idx]
	}
	return ""
}
