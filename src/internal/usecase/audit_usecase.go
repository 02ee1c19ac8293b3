package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/pkg/log"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeAuditRecord = "audit:record"

type AuditStore interface {
	InsertAudit(ctx context.Context, entry *entity.AuditLog) error
}

// AuditUseCase records audit facts without ever failing the primary
// operation: entries are enqueued to asynq and written by HandleRecord.
// When no queue client is wired the write happens inline, still
// best-effort.
type AuditUseCase struct {
	Log        log.Log
	Client     *asynq.Client
	Repository AuditStore
}

func NewAuditUseCase(logger log.Log, client *asynq.Client, repository AuditStore) *AuditUseCase {
	return &AuditUseCase{
		Log:        logger,
		Client:     client,
		Repository: repository,
	}
}

func (u *AuditUseCase) Record(ctx context.Context, tenantID, actorID, action string, targetID *string, metadata map[string]interface{}) {
	entry := entity.AuditLog{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		ActorID:   actorID,
		Action:    action,
		TargetID:  targetID,
		CreatedAt: time.Now().UTC(),
	}
	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err != nil {
			u.Log.Error("audit-usecase", fmt.Sprintf("failed to marshal metadata: %v", err), "Record", action)
		} else {
			entry.Metadata = data
		}
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		u.Log.Error("audit-usecase", fmt.Sprintf("failed to marshal entry: %v", err), "Record", action)
		return
	}

	if u.Client != nil {
		if _, err := u.Client.EnqueueContext(ctx, asynq.NewTask(TypeAuditRecord, payload)); err == nil {
			return
		} else {
			u.Log.Error("audit-usecase", fmt.Sprintf("enqueue failed, writing inline: %v", err), "Record", action)
		}
	}

	if err := u.Repository.InsertAudit(ctx, &entry); err != nil {
		u.Log.Error("audit-usecase", fmt.Sprintf("failed to insert audit entry: %v", err), "Record", action)
	}
}

// HandleRecord is the asynq handler that persists queued audit entries.
func (u *AuditUseCase) HandleRecord(ctx context.Context, task *asynq.Task) error {
	var entry entity.AuditLog
	if err := json.Unmarshal(task.Payload(), &entry); err != nil {
		u.Log.Error("audit-usecase", fmt.Sprintf("malformed audit task: %v", err), "HandleRecord", "")
		return nil // poison task, do not retry
	}

	if err := u.Repository.InsertAudit(ctx, &entry); err != nil {
		u.Log.Error("audit-usecase", fmt.Sprintf("failed to insert audit entry: %v", err), "HandleRecord", entry.Action)
		return err
	}
	return nil
}
