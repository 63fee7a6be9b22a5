package users

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vigil-auth/vigil/internal/authz"
	"github.com/vigil-auth/vigil/internal/platform/httpx"
	"github.com/vigil-auth/vigil/internal/shared"
)

// Handler wires HTTP endpoints for user management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     authz.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard, validator: validator.New()}
}

// MountRoutes registers user management routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Protect("users.list"))
		r.Get("/", h.listUsers)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Protect("users.update_roles"))
		r.Put("/{username}/roles", h.updateRoles)
	})
}

type userView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	views := make([]userView, len(list))
	for i, user := range list {
		views[i] = userView{
			ID:        user.ID,
			Username:  user.Username,
			Roles:     user.Roles,
			Locked:    user.Locked,
			CreatedAt: user.CreatedAt,
		}
	}
	httpx.JSON(w, http.StatusOK, views)
}

type updateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,dive,required"`
}

func (h *Handler) updateRoles(w http.ResponseWriter, r *http.Request) {
	var req updateRolesRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "roles list is required")
		return
	}

	username := chi.URLParam(r, "username")
	if err := h.service.UpdateRoles(r.Context(), username, req.Roles); err != nil {
		if !errors.Is(err, shared.ErrNotFound) && !errors.Is(err, shared.ErrLockedAccount) {
			h.logger.Error("update roles", slog.String("username", username), slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
