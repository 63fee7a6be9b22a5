package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/vigil-auth/vigil/internal/token"
)

// TokenAuditPurgeJob removes audit rows for long-expired tokens.
type TokenAuditPurgeJob struct {
	auditor   *token.PGAuditor
	logger    *slog.Logger
	retention time.Duration
}

// NewTokenAuditPurgeJob constructs the purge job.
func NewTokenAuditPurgeJob(auditor *token.PGAuditor, logger *slog.Logger, retention time.Duration) *TokenAuditPurgeJob {
	return &TokenAuditPurgeJob{auditor: auditor, logger: logger, retention: retention}
}

// Handle processes TaskTokenAuditPurge tasks.
func (j *TokenAuditPurgeJob) Handle(ctx context.Context, t *asynq.Task) error {
	retention := j.retention
	if len(t.Payload()) > 0 {
		var payload TokenAuditPurgePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.Retention > 0 {
			retention = payload.Retention
		}
	}

	cutoff := time.Now().UTC().Add(-retention)
	removed, err := j.auditor.PurgeExpired(ctx, cutoff)
	if err != nil {
		return err
	}
	if j.logger != nil {
		j.logger.Info("token audit purge",
			slog.Int64("removed", removed),
			slog.Time("cutoff", cutoff))
	}
	return nil
}
