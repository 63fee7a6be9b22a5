package pref

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vigil-auth/vigil/internal/authz"
	"github.com/vigil-auth/vigil/internal/platform/httpx"
)

// Handler wires HTTP endpoints for system preferences.
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

// MountRoutes registers preference routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Protect("pref.get"))
		r.Get("/sys/{key}", h.getPreference)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Protect("pref.set"))
		r.Post("/sys/{key}", h.setPreference)
	})
}

type updatePreferenceRequest struct {
	Value string `json:"value" validate:"required,max=1024"`
}

func (h *Handler) getPreference(w http.ResponseWriter, r *http.Request) {
	preference, err := h.service.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		if errors.Is(err, ErrUnknownKey) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		h.logger.Error("get preference", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, preference)
}

func (h *Handler) setPreference(w http.ResponseWriter, r *http.Request) {
	var req updatePreferenceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "value is required")
		return
	}
	preference, err := h.service.Set(r.Context(), chi.URLParam(r, "key"), req.Value)
	if err != nil {
		if errors.Is(err, ErrUnknownKey) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		h.logger.Error("set preference", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, preference)
}
