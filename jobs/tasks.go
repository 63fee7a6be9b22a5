package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTokenAuditPurge deletes expired token issuance audit rows.
	TaskTokenAuditPurge = "audit:purge"
	// TaskPermissionSync reconciles stored roles with the permission vocabulary.
	TaskPermissionSync = "perms:sync"
)

// TokenAuditPurgePayload parameterises the audit purge.
type TokenAuditPurgePayload struct {
	// Retention keeps rows for this long past token expiry.
	Retention time.Duration `json:"retention"`
}

// NewTokenAuditPurgeTask constructs an Asynq task.
func NewTokenAuditPurgeTask(payload TokenAuditPurgePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTokenAuditPurge, data), nil
}

// NewPermissionSyncTask constructs an Asynq task.
func NewPermissionSyncTask() *asynq.Task {
	return asynq.NewTask(TaskPermissionSync, nil)
}
