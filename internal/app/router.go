package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vigil-auth/vigil/internal/auth"
	"github.com/vigil-auth/vigil/internal/authz"
	"github.com/vigil-auth/vigil/internal/observability"
	"github.com/vigil-auth/vigil/internal/platform/httpx"
	"github.com/vigil-auth/vigil/internal/pref"
	"github.com/vigil-auth/vigil/internal/roles"
	"github.com/vigil-auth/vigil/internal/token"
	"github.com/vigil-auth/vigil/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger       *slog.Logger
	Config       *Config
	TokenService *token.Service
	Guard        authz.Middleware
	AuthHandler  *auth.Handler
	UsersHandler *users.Handler
	RolesHandler *roles.Handler
	PrefHandler  *pref.Handler
	Metrics      *observability.Metrics
}

type infoResponse struct {
	Production bool   `json:"production"`
	Version    string `json:"version"`
}

// Version is stamped at build time via -ldflags.
var Version = "dev"

// NewRouter constructs the chi.Router with Vigil defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(params.TokenService))

		r.Group(func(r chi.Router) {
			r.Use(params.Guard.Protect("info.get"))
			r.Get("/info", func(w http.ResponseWriter, req *http.Request) {
				httpx.JSON(w, http.StatusOK, infoResponse{
					Production: params.Config.IsProduction(),
					Version:    Version,
				})
			})
		})

		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/roles", params.RolesHandler.MountRoutes)
		r.Route("/pref", params.PrefHandler.MountRoutes)
	})

	return r
}
