package usecase

import (
	"context"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/internal/repository"
)

// Store interfaces consumed by the usecases; the concrete sqlx repositories
// satisfy them, tests use in-memory fakes.

type OrderStore interface {
	Insert(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	AssignDriver(ctx context.Context, orderID, driverID string) (bool, error)
	UpdateStatus(ctx context.Context, orderID string, from, to entity.OrderStatus) (bool, error)
	UpdateQRBinding(ctx context.Context, orderID, qrCodeID, qrData, qrSignature string, expiresAt time.Time) error
	UpdateLastLocation(ctx context.Context, orderID, location string, at time.Time) error
	Delete(ctx context.Context, orderID string) error
}

type QRCodeStore interface {
	Insert(ctx context.Context, code *entity.QRCode) error
	UpdateImageURL(ctx context.Context, id, imageURL string) error
	Delete(ctx context.Context, id string) error
}

type ActivationStore interface {
	Insert(ctx context.Context, activation *entity.LoadActivation) error
	FindByOrderID(ctx context.Context, orderID string) (*entity.LoadActivation, error)
}

type LocationStore interface {
	Insert(ctx context.Context, update *entity.LocationUpdate) error
	UpdateDriverLastLocation(ctx context.Context, driverID, location string, at time.Time) error
}

type TrackingStore interface {
	GetActiveOrder(ctx context.Context, driverID string) (string, error)
	SetActiveOrder(ctx context.Context, driverID, orderID string) (string, error)
	ClearActiveOrder(ctx context.Context, driverID string) error
	GetLastSample(ctx context.Context, driverID string) (*repository.TrackingSample, error)
	SetLastSample(ctx context.Context, driverID string, sample *repository.TrackingSample) error
}

type StatusStore interface {
	InsertStatusUpdate(ctx context.Context, update *entity.StatusUpdate) error
}

type UserStore interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, tenantID, email string) (*entity.User, error)
	Insert(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// Auditor records append-only audit facts; implementations are fire-and-forget.
type Auditor interface {
	Record(ctx context.Context, tenantID, actorID, action string, targetID *string, metadata map[string]interface{})
}

// StatusPublisher mirrors status transitions onto the broker.
type StatusPublisher interface {
	SendStatusUpdate(event *model.OrderStatusEvent) error
}

// QRRenderer turns payload text into a PNG.
type QRRenderer interface {
	Render(data string) ([]byte, error)
}

// ReverseGeocoder resolves a coordinate to a human-readable address.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}
