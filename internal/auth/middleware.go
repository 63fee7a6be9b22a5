package auth

import (
	"net/http"
	"strings"

	"github.com/vigil-auth/vigil/internal/authz"
	"github.com/vigil-auth/vigil/internal/platform/httpx"
	"github.com/vigil-auth/vigil/internal/token"
)

const bearerPrefix = "Bearer "

// Middleware authenticates requests. A valid bearer token attaches its
// identity; no token at all attaches the guest principal. A token that is
// present but invalid is rejected here with 401, before the guard runs.
func Middleware(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				ctx := authz.ContextWithAuthResult(r.Context(), authz.AuthResult{OK: true, Identity: authz.Guest()})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			raw := strings.TrimPrefix(header, bearerPrefix)
			if raw == header {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "malformed authorization header")
				return
			}
			identity, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}
			ctx := authz.ContextWithAuthResult(r.Context(), authz.AuthResult{OK: true, Identity: identity})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
