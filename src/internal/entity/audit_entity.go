package entity

import "time"

// StatusUpdate and AuditLog are append-only event rows; every externally
// observable transition produces one of each.

type StatusUpdate struct {
	ID        string      `db:"id"`
	OrderID   string      `db:"order_id"`
	OldStatus OrderStatus `db:"old_status"`
	NewStatus OrderStatus `db:"new_status"`
	ActorID   string      `db:"actor_id"`
	Note      *string     `db:"note"`
	CreatedAt time.Time   `db:"created_at"`
}

type AuditLog struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	ActorID   string    `db:"actor_id"`
	Action    string    `db:"action"`
	TargetID  *string   `db:"target_id"`
	Metadata  []byte    `db:"metadata"` // JSON
	CreatedAt time.Time `db:"created_at"`
}

const (
	AuditQRCodeScanned       = "QR_CODE_SCANNED"
	AuditLoadActivated       = "LOAD_ACTIVATED"
	AuditOrderCreated        = "ORDER_CREATED"
	AuditDriverAccountCreated = "DRIVER_ACCOUNT_CREATED"
	AuditDriverPasswordReset  = "DRIVER_PASSWORD_RESET"
)
