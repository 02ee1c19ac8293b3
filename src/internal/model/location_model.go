package model

import "time"

type RecordLocationRequest struct {
	OrderID    string     `json:"order_id" validate:"required"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Accuracy   *float64   `json:"accuracy,omitempty"`
	Speed      *float64   `json:"speed,omitempty"`
	Heading    *float64   `json:"heading,omitempty"`
	Battery    *float64   `json:"battery,omitempty"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

type RecordLocationResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

type StartTrackingRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type TrackingSessionResponse struct {
	OrderID         string  `json:"order_id,omitempty"`
	PreviousOrderID *string `json:"previous_order_id,omitempty"`
	Active          bool    `json:"active"`
}
