package model

import (
	"encoding/json"
	"time"

	"load-tracking-service/src/internal/entity"
)

type GeoPointRequest struct {
	Name        string     `json:"name" validate:"required"`
	Address     string     `json:"address" validate:"required"`
	Latitude    float64    `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64    `json:"longitude" validate:"min=-180,max=180"`
	WindowStart *time.Time `json:"window_start,omitempty"`
	WindowEnd   *time.Time `json:"window_end,omitempty"`
}

type OrderData struct {
	OrderNumber    string            `json:"order_number"`
	LoadingPoint   GeoPointRequest   `json:"loading_point" validate:"required"`
	UnloadingPoint GeoPointRequest   `json:"unloading_point" validate:"required"`
	Waypoints      []GeoPointRequest `json:"waypoints,omitempty" validate:"omitempty,dive"`
}

type CreateOrderRequest struct {
	OrderData *OrderData `json:"orderData" validate:"required"`
}

type CreateOrderResponse struct {
	Order    *OrderProjection `json:"order"`
	QRCode   *QRCodeResponse  `json:"qrCode"`
	QRCodeURL string          `json:"qrCodeUrl"`
}

type QRCodeResponse struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	TrackingCode string    `json:"tracking_code"`
	ImageURL     *string   `json:"image_url"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// OrderProjection is the view returned to clients; it never carries the
// signing secret or other tenants' data.
type OrderProjection struct {
	ID                    string             `json:"id"`
	OrderNumber           string             `json:"order_number"`
	Status                entity.OrderStatus `json:"status"`
	AssignedDriverID      *string            `json:"assigned_driver_id,omitempty"`
	LoadingPointName      string             `json:"loading_point_name"`
	LoadingPointAddress   string             `json:"loading_point_address"`
	UnloadingPointName    string             `json:"unloading_point_name"`
	UnloadingPointAddress string             `json:"unloading_point_address"`
	QRCodeExpiresAt       *time.Time         `json:"qr_code_expires_at,omitempty"`
	LastLocation          *string            `json:"last_location,omitempty"`
	LastLocationUpdate    *time.Time         `json:"last_location_update,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

type ActivateLoadRequest struct {
	OrderID         string          `json:"order_id" validate:"required"`
	Location        json.RawMessage `json:"location,omitempty"`
	LocationAddress string          `json:"location_address,omitempty"`
	DeviceInfo      json.RawMessage `json:"device_info,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type ActivationResponse struct {
	Activation *entity.LoadActivation `json:"activation"`
	Order      *OrderProjection       `json:"order"`
}
