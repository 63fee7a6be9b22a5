package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/vigil-auth/vigil/internal/app"
	"github.com/vigil-auth/vigil/internal/platform/db"
	"github.com/vigil-auth/vigil/internal/roles"
	"github.com/vigil-auth/vigil/internal/token"
	"github.com/vigil-auth/vigil/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	auditor := token.NewPGAuditor(pool)
	roleService := roles.NewService(roles.NewRepository(pool))

	purgeJob := jobs.NewTokenAuditPurgeJob(auditor, logger, cfg.TokenAuditRetention)
	syncJob := jobs.NewPermissionSyncJob(roleService, logger)

	purgeTask, err := jobs.NewTokenAuditPurgeTask(jobs.TokenAuditPurgePayload{Retention: cfg.TokenAuditRetention})
	if err != nil {
		logger.Error("build purge task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTokenAuditPurge, Handler: purgeJob.Handle},
			{Type: jobs.TaskPermissionSync, Handler: syncJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: purgeTask},
			{Spec: "30 * * * *", Task: jobs.NewPermissionSyncTask()},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
