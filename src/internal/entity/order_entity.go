package entity

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusAssigned   OrderStatus = "assigned"
	StatusActivated  OrderStatus = "activated"
	StatusInProgress OrderStatus = "in_progress"
	StatusInTransit  OrderStatus = "in_transit"
	StatusArrived    OrderStatus = "arrived"
	StatusLoading    OrderStatus = "loading"
	StatusLoaded     OrderStatus = "loaded"
	StatusUnloading  OrderStatus = "unloading"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// next holds the single forward transition for each non-terminal status.
// cancelled is reachable from any non-terminal status and handled in
// CanTransitionTo directly.
var next = map[OrderStatus]OrderStatus{
	StatusPending:    StatusAssigned,
	StatusAssigned:   StatusActivated,
	StatusActivated:  StatusInProgress,
	StatusInProgress: StatusInTransit,
	StatusInTransit:  StatusArrived,
	StatusArrived:    StatusLoading,
	StatusLoading:    StatusLoaded,
	StatusLoaded:     StatusUnloading,
	StatusUnloading:  StatusCompleted,
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	return next[s] == target
}

// Next returns the forward transition, or the zero value for terminal states.
func (s OrderStatus) Next() OrderStatus {
	return next[s]
}

type Order struct {
	ID              string      `db:"id"`
	TenantID        string      `db:"tenant_id"`
	OrderNumber     string      `db:"order_number"`
	Status          OrderStatus `db:"status"`
	AssignedDriverID *string    `db:"assigned_driver_id"`

	QRCodeID        *string    `db:"qr_code_id"`
	QRCodeData      *string    `db:"qr_code_data"`
	QRCodeSignature *string    `db:"qr_code_signature"`
	QRCodeExpiresAt *time.Time `db:"qr_code_expires_at"`

	LoadingPointName      string     `db:"loading_point_name"`
	LoadingPointAddress   string     `db:"loading_point_address"`
	LoadingPoint          *string    `db:"loading_point"` // WKT geography
	LoadingWindowStart    *time.Time `db:"loading_window_start"`
	LoadingWindowEnd      *time.Time `db:"loading_window_end"`
	UnloadingPointName    string     `db:"unloading_point_name"`
	UnloadingPointAddress string     `db:"unloading_point_address"`
	UnloadingPoint        *string    `db:"unloading_point"` // WKT geography
	UnloadingWindowStart  *time.Time `db:"unloading_window_start"`
	UnloadingWindowEnd    *time.Time `db:"unloading_window_end"`

	Waypoints []byte `db:"waypoints"` // JSON array of WKT points, optional

	LastLocation       *string    `db:"last_location"`
	LastLocationUpdate *time.Time `db:"last_location_update"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
