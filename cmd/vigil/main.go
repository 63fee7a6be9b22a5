package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vigil-auth/vigil/internal/app"
	"github.com/vigil-auth/vigil/internal/auth"
	"github.com/vigil-auth/vigil/internal/authz"
	"github.com/vigil-auth/vigil/internal/observability"
	"github.com/vigil-auth/vigil/internal/platform/cache"
	"github.com/vigil-auth/vigil/internal/platform/db"
	"github.com/vigil-auth/vigil/internal/pref"
	"github.com/vigil-auth/vigil/internal/roles"
	"github.com/vigil-auth/vigil/internal/token"
	"github.com/vigil-auth/vigil/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	registry, err := app.BuildRegistry()
	if err != nil {
		logger.Error("build requirement registry", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	roleRepo := roles.NewCachedRepository(roles.NewRepository(pool), redisClient, cfg.RoleCacheTTL)
	roleService := roles.NewService(roleRepo)

	guard := authz.NewGuard(registry, authz.NewResolver(roleService), logger, metrics)
	guardMiddleware := authz.Middleware{Guard: guard}

	userService := users.NewService(users.NewRepository(pool))
	hasher := token.BcryptHasher{}
	signer := token.NewJWTSigner([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiry)
	tokenService := token.NewService(userService, hasher, signer, token.NewPGAuditor(pool), logger)

	prefService := pref.NewService(pref.NewRepository(pool))

	authHandler := auth.NewHandler(logger, tokenService, hasher, userService, prefService, guardMiddleware, auth.RateLimit{
		Requests: cfg.LoginRateLimit,
		Window:   cfg.LoginRateWindow,
	})
	usersHandler := users.NewHandler(logger, userService, guardMiddleware)
	rolesHandler := roles.NewHandler(logger, roleService, guardMiddleware)
	prefHandler := pref.NewHandler(logger, prefService, guardMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:       logger,
		Config:       cfg,
		TokenService: tokenService,
		Guard:        guardMiddleware,
		AuthHandler:  authHandler,
		UsersHandler: usersHandler,
		RolesHandler: rolesHandler,
		PrefHandler:  prefHandler,
		Metrics:      metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
