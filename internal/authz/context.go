package authz

import "context"

type authResultContextKey struct{}

// ContextWithAuthResult stores the authentication result in context.
func ContextWithAuthResult(ctx context.Context, result AuthResult) context.Context {
	return context.WithValue(ctx, authResultContextKey{}, result)
}

// AuthResultFromContext extracts the authentication result from context.
// The second return is false when no authentication middleware ran.
func AuthResultFromContext(ctx context.Context) (AuthResult, bool) {
	result, ok := ctx.Value(authResultContextKey{}).(AuthResult)
	return result, ok
}
