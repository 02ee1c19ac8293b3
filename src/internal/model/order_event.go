package model

import (
	"time"

	"load-tracking-service/src/internal/entity"
)

// OrderStatusEvent mirrors every StatusUpdate row onto the broker.
type OrderStatusEvent struct {
	EventID    string             `json:"event_id"`
	OrderID    string             `json:"order_id"`
	TenantID   string             `json:"tenant_id"`
	OldStatus  entity.OrderStatus `json:"old_status"`
	NewStatus  entity.OrderStatus `json:"new_status"`
	ActorID    string             `json:"actor_id"`
	OccurredAt time.Time          `json:"occurred_at"`
}

func (e *OrderStatusEvent) GetId() string {
	return e.EventID
}
