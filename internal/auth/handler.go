package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/vigil-auth/vigil/internal/authz"
	"github.com/vigil-auth/vigil/internal/platform/httpx"
	"github.com/vigil-auth/vigil/internal/pref"
	"github.com/vigil-auth/vigil/internal/token"
	"github.com/vigil-auth/vigil/internal/users"
)

// RateLimit bounds login attempts per client IP.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	tokens    *token.Service
	hasher    token.PasswordHasher
	users     *users.Service
	prefs     *pref.Service
	guard     authz.Middleware
	limit     RateLimit
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, tokens *token.Service, hasher token.PasswordHasher, userService *users.Service, prefs *pref.Service, guard authz.Middleware, limit RateLimit) *Handler {
	return &Handler{
		logger:    logger,
		tokens:    tokens,
		hasher:    hasher,
		users:     userService,
		prefs:     prefs,
		guard:     guard,
		limit:     limit,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(h.limit.Requests, h.limit.Window, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Use(h.guard.Protect("auth.login"))
		r.Post("/login", h.handleLogin)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Protect("auth.register"))
		r.Post("/register", h.handleRegister)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Protect("auth.me"))
		r.Get("/me", h.handleMe)
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string         `json:"token"`
	Identity authz.Identity `json:"identity"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "username and password are required")
		return
	}

	identity, err := h.tokens.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		// Uniform refusal: no hint whether the account exists.
		httpx.RespondError(w, err)
		return
	}

	signed, err := h.tokens.Issue(r.Context(), identity)
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, loginResponse{Token: signed, Identity: identity})
}

// bcrypt rejects inputs over 72 bytes, so the password cap matches it.
const maxPasswordBytes = 72

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.prefs.Get(r.Context(), string(pref.KeyEnableRegister))
	if err != nil {
		h.logger.Error("read register preference", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if enabled.Value != "true" {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "registration is disabled")
		return
	}

	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "username and password do not meet requirements")
		return
	}
	// The validator counts runes; multi-byte passwords need the byte check.
	if len(req.Password) > maxPasswordBytes {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "password is too long")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("hash password", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	user, err := h.users.Register(r.Context(), req.Username, hash)
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			httpx.Problem(w, http.StatusConflict, "Duplicate", "username already taken")
			return
		}
		h.logger.Error("register user", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, users.Identity(user))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	result, ok := authz.AuthResultFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, result.Identity)
}
