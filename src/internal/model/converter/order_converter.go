package converter

import (
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/internal/model"

	"github.com/google/uuid"
)

func OrderToProjection(order *entity.Order) *model.OrderProjection {
	return &model.OrderProjection{
		ID:                    order.ID,
		OrderNumber:           order.OrderNumber,
		Status:                order.Status,
		AssignedDriverID:      order.AssignedDriverID,
		LoadingPointName:      order.LoadingPointName,
		LoadingPointAddress:   order.LoadingPointAddress,
		UnloadingPointName:    order.UnloadingPointName,
		UnloadingPointAddress: order.UnloadingPointAddress,
		QRCodeExpiresAt:       order.QRCodeExpiresAt,
		LastLocation:          order.LastLocation,
		LastLocationUpdate:    order.LastLocationUpdate,
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
	}
}

func QRCodeToResponse(code *entity.QRCode) *model.QRCodeResponse {
	return &model.QRCodeResponse{
		ID:           code.ID,
		OrderID:      code.OrderID,
		TrackingCode: code.TrackingCode,
		ImageURL:     code.ImageURL,
		ExpiresAt:    code.ExpiresAt,
	}
}

func StatusChangeToEvent(order *entity.Order, old entity.OrderStatus, actorID string) *model.OrderStatusEvent {
	return &model.OrderStatusEvent{
		EventID:    uuid.NewString(),
		OrderID:    order.ID,
		TenantID:   order.TenantID,
		OldStatus:  old,
		NewStatus:  order.Status,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}
