package entity

import "time"

type QRCode struct {
	ID           string    `db:"id"`
	OrderID      string    `db:"order_id"`
	TrackingCode string    `db:"tracking_code"`
	Payload      string    `db:"payload"` // base64 JSON handed to the client
	ImageURL     *string   `db:"image_url"`
	ExpiresAt    time.Time `db:"expires_at"`
	CreatedAt    time.Time `db:"created_at"`
}

// LoadActivation is one-to-one with an order; the unique index on order_id
// rejects a second activation at the storage layer.
type LoadActivation struct {
	ID              string    `db:"id"`
	OrderID         string    `db:"order_id"`
	DriverID        string    `db:"driver_id"`
	Location        *string   `db:"location"` // WKT geography
	LocationAddress *string   `db:"location_address"`
	DeviceInfo      []byte    `db:"device_info"` // JSON
	Notes           *string   `db:"notes"`
	ActivatedAt     time.Time `db:"activated_at"`
}
