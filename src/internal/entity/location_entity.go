package entity

import "time"

// LocationUpdate rows are append-only; nothing mutates them after insert.
type LocationUpdate struct {
	ID         string    `db:"id"`
	OrderID    string    `db:"order_id"`
	DriverID   string    `db:"driver_id"`
	Location   string    `db:"location"` // WKT geography
	Accuracy   *float64  `db:"accuracy"`
	Speed      *float64  `db:"speed"`
	Heading    *float64  `db:"heading"`
	Battery    *float64  `db:"battery"`
	RecordedAt time.Time `db:"recorded_at"`
}
