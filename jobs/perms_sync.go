package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/vigil-auth/vigil/internal/authz"
	"github.com/vigil-auth/vigil/internal/roles"
)

// PermissionSyncJob reconciles stored role definitions against the
// permission vocabulary. Roles carrying unknown tokens would make the
// resolver fail closed at request time; this job surfaces the drift to
// operators ahead of that.
type PermissionSyncJob struct {
	roles  *roles.Service
	logger *slog.Logger
}

// NewPermissionSyncJob constructs the sync job.
func NewPermissionSyncJob(roleService *roles.Service, logger *slog.Logger) *PermissionSyncJob {
	return &PermissionSyncJob{roles: roleService, logger: logger}
}

// Handle processes TaskPermissionSync tasks.
func (j *PermissionSyncJob) Handle(ctx context.Context, t *asynq.Task) error {
	list, err := j.roles.ListRoles(ctx)
	if err != nil {
		return err
	}

	drift := 0
	for _, role := range list {
		for _, raw := range role.Permissions {
			if _, err := authz.ParsePermission(raw); err != nil {
				drift++
				if j.logger != nil {
					j.logger.Error("role references permission outside vocabulary",
						slog.String("role", role.Name),
						slog.String("permission", raw))
				}
			}
		}
	}
	if j.logger != nil {
		j.logger.Info("permission sync completed",
			slog.Int("roles", len(list)),
			slog.Int("drift", drift))
	}
	return nil
}
