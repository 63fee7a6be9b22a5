package roles

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vigil-auth/vigil/internal/authz"
	"github.com/vigil-auth/vigil/internal/platform/httpx"
)

// Handler wires HTTP endpoints for role inspection.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   authz.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers role routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Protect("roles.list"))
		r.Get("/", h.listRoles)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Protect("permissions.list"))
		r.Get("/permissions", h.listPermissions)
	})
}

type roleView struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListRoles(r.Context())
	if err != nil {
		h.logger.Error("list roles", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	views := make([]roleView, len(list))
	for i, role := range list {
		views[i] = roleView{Name: role.Name, Permissions: role.Permissions}
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) listPermissions(w http.ResponseWriter, r *http.Request) {
	perms := authz.AllPermissions()
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.String()
	}
	httpx.JSON(w, http.StatusOK, names)
}
