package repository

import (
	"context"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/pkg/databases/postgres"
)

type AuditRepository struct {
	DB postgres.DBInterface
}

func NewAuditRepository(db postgres.DBInterface) *AuditRepository {
	return &AuditRepository{
		DB: db,
	}
}

func (r *AuditRepository) InsertAudit(ctx context.Context, entry *entity.AuditLog) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_log (id, tenant_id, actor_id, action, target_id, metadata, created_at)
		VALUES (:id, :tenant_id, :actor_id, :action, :target_id, :metadata, :created_at)
	`
	_, err = db.NamedExecContext(ctx, query, entry)
	return err
}

func (r *AuditRepository) InsertStatusUpdate(ctx context.Context, update *entity.StatusUpdate) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO status_updates (id, order_id, old_status, new_status, actor_id, note, created_at)
		VALUES (:id, :order_id, :old_status, :new_status, :actor_id, :note, :created_at)
	`
	_, err = db.NamedExecContext(ctx, query, update)
	return err
}
