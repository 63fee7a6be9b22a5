package authz

import (
	"net/http"

	"github.com/vigil-auth/vigil/internal/platform/httpx"
)

// Middleware wires the guard into HTTP handlers.
type Middleware struct {
	Guard *Guard
}

// Protect gates the wrapped handler behind the declared requirement for
// the given operation. Fatal decisions surface as internal errors; the
// handler never runs on anything but Allow.
func (m Middleware) Protect(operation string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, ok := AuthResultFromContext(r.Context())
			if !ok {
				// No authentication middleware ran. Treated exactly like
				// an upstream authentication failure: a wiring bug.
				result = AuthResult{}
			}
			decision := m.Guard.Authorize(r.Context(), result, operation)
			switch decision.Outcome {
			case OutcomeAllow:
				next.ServeHTTP(w, r)
			case OutcomeDeny:
				httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
			default:
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			}
		})
	}
}
