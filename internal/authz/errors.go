package authz

import "fmt"

// ValidationError reports an identity snapshot that failed schema
// validation. Tokens are only ever signed over validated identities, so
// hitting this after verification is an integrity fault, not client input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("authz: invalid identity: %s", e.Reason)
	}
	return fmt.Sprintf("authz: invalid identity field %s: %s", e.Field, e.Reason)
}

// ResolutionError reports a failure to compute an identity's effective
// permission set, typically a role reference the role-store cannot find.
type ResolutionError struct {
	Role   string
	Reason string
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("authz: resolve permissions: %s", e.Reason)
	}
	return fmt.Sprintf("authz: resolve permissions for role %q: %s", e.Role, e.Reason)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ExtractionError reports a missing or malformed permission requirement
// declaration. This is an authoring bug on the operation table, never a
// legitimate access refusal.
type ExtractionError struct {
	Operation string
	Reason    string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("authz: requirement for operation %q: %s", e.Operation, e.Reason)
}
