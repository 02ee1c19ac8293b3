package usecase

import (
	"context"
	"fmt"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/internal/metrics"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/internal/model/converter"
	httpError "load-tracking-service/src/pkg/http-error"
	"load-tracking-service/src/pkg/log"
	"load-tracking-service/src/pkg/signature"
	"load-tracking-service/src/pkg/token"
	"load-tracking-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// qrMaxAge is how long a QR payload stays scannable after signing.
const qrMaxAge = 24 * time.Hour

type QRCodeUseCase struct {
	Log         log.Log
	Validate    *validator.Validate
	Signer      *signature.Signer
	Orders      OrderStore
	Activations ActivationStore
	Statuses    StatusStore
	Auditor     Auditor
	Producer    StatusPublisher
}

func NewQRCodeUseCase(
	logger log.Log,
	validate *validator.Validate,
	signer *signature.Signer,
	orders OrderStore,
	activations ActivationStore,
	statuses StatusStore,
	auditor Auditor,
	producer StatusPublisher,
) *QRCodeUseCase {
	return &QRCodeUseCase{
		Log:         logger,
		Validate:    validate,
		Signer:      signer,
		Orders:      orders,
		Activations: activations,
		Statuses:    statuses,
		Auditor:     auditor,
		Producer:    producer,
	}
}

func (c *QRCodeUseCase) CreateSignature(ctx context.Context, request *model.CreateSignatureRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("qrcode-usecase", errObj.Message, "CreateSignature", utils.ConvertString(err))
		return result
	}

	result.Data = model.CreateSignatureResponse{
		Signature: c.Signer.Sign(request.OrderID, request.Timestamp),
	}
	return result
}

// ValidateScan decodes a scanned QR payload, verifies it, and advances the
// order lifecycle for driver actors. Re-scanning an order that already moved
// past activation is a no-op returning the current state.
func (c *QRCodeUseCase) ValidateScan(ctx context.Context, claim *token.Claim, request *model.ValidateQRCodeRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = "qrCodeData is required"
		result.Error = errObj
		metrics.QRScansTotal.WithLabelValues("bad_request").Inc()
		return result
	}

	payload, err := model.DecodeQRPayload(request.QRCodeData)
	if err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = "malformed QR code data"
		result.Error = errObj
		c.Log.Error("qrcode-usecase", errObj.Message, "ValidateScan", utils.ConvertString(err))
		metrics.QRScansTotal.WithLabelValues("malformed").Inc()
		return result
	}

	if time.Since(time.Unix(payload.Timestamp, 0)) > qrMaxAge {
		errObj := httpError.NewUnauthorized()
		errObj.Message = "QR code has expired"
		result.Error = errObj
		metrics.QRScansTotal.WithLabelValues("expired").Inc()
		return result
	}

	if !c.Signer.Verify(payload.OrderID, payload.Timestamp, payload.Signature) {
		errObj := httpError.NewUnauthorized()
		errObj.Message = "invalid QR code signature"
		result.Error = errObj
		c.Log.Error("qrcode-usecase", errObj.Message, "ValidateScan", payload.OrderID)
		metrics.QRScansTotal.WithLabelValues("invalid_signature").Inc()
		return result
	}

	order, err := c.Orders.FindByID(ctx, payload.OrderID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load order"
		result.Error = errObj
		c.Log.Error("qrcode-usecase", fmt.Sprintf("find order %s: %v", payload.OrderID, err), "ValidateScan", "")
		return result
	}
	if order == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("order %s not found", payload.OrderID)
		result.Error = errObj
		metrics.QRScansTotal.WithLabelValues("not_found").Inc()
		return result
	}
	if !claim.SameTenant(order.TenantID) {
		errObj := httpError.NewForbidden()
		errObj.Message = "access denied"
		result.Error = errObj
		metrics.QRScansTotal.WithLabelValues("access_denied").Inc()
		return result
	}

	// every scan is audited, even ones that do not advance the order
	c.Auditor.Record(ctx, order.TenantID, claim.UserID, entity.AuditQRCodeScanned, &order.ID,
		map[string]interface{}{"status": order.Status})

	if !claim.IsDriver() {
		result.Data = converter.OrderToProjection(order)
		metrics.QRScansTotal.WithLabelValues("ok").Inc()
		return result
	}

	switch {
	case order.Status == entity.StatusPending:
		ok, err := c.Orders.AssignDriver(ctx, order.ID, claim.UserID)
		if err != nil {
			errObj := httpError.NewInternalServerError()
			errObj.Message = "failed to assign driver"
			result.Error = errObj
			c.Log.Error("qrcode-usecase", fmt.Sprintf("assign driver: %v", err), "ValidateScan", order.ID)
			return result
		}
		if !ok {
			errObj := httpError.NewConflict()
			errObj.Message = "order was claimed by another scan, please rescan"
			result.Error = errObj
			metrics.QRScansTotal.WithLabelValues("conflict").Inc()
			return result
		}
		old := order.Status
		order.Status = entity.StatusAssigned
		order.AssignedDriverID = &claim.UserID
		c.emitStatusChange(ctx, order, old, claim.UserID)

	case order.AssignedDriverID == nil || *order.AssignedDriverID != claim.UserID:
		errObj := httpError.NewForbidden()
		errObj.Message = "you are not the assigned driver for this order"
		result.Error = errObj
		metrics.QRScansTotal.WithLabelValues("not_assigned").Inc()
		return result

	case order.Status == entity.StatusAssigned:
		activation, err := c.Activations.FindByOrderID(ctx, order.ID)
		if err != nil {
			errObj := httpError.NewInternalServerError()
			errObj.Message = "failed to check activation"
			result.Error = errObj
			c.Log.Error("qrcode-usecase", fmt.Sprintf("find activation: %v", err), "ValidateScan", order.ID)
			return result
		}
		if activation == nil {
			errObj := httpError.NewConflict()
			errObj.Message = "load activation required before transport can start"
			result.Error = errObj
			metrics.QRScansTotal.WithLabelValues("activation_required").Inc()
			return result
		}
		// activation row exists but the order transition has not landed yet
		errObj := httpError.NewConflict()
		errObj.Message = "activation is still being processed, please rescan"
		result.Error = errObj
		return result

	case order.Status == entity.StatusActivated:
		ok, err := c.Orders.UpdateStatus(ctx, order.ID, entity.StatusActivated, entity.StatusInProgress)
		if err != nil {
			errObj := httpError.NewInternalServerError()
			errObj.Message = "failed to start transport"
			result.Error = errObj
			c.Log.Error("qrcode-usecase", fmt.Sprintf("update status: %v", err), "ValidateScan", order.ID)
			return result
		}
		if ok {
			old := order.Status
			order.Status = entity.StatusInProgress
			c.emitStatusChange(ctx, order, old, claim.UserID)
		}
		// !ok means a concurrent scan already advanced the order; fall
		// through and report current state, same as a repeat scan

	default:
		// in_progress and beyond: repeat scans are idempotent no-ops
	}

	result.Data = converter.OrderToProjection(order)
	metrics.QRScansTotal.WithLabelValues("ok").Inc()
	return result
}

func (c *QRCodeUseCase) emitStatusChange(ctx context.Context, order *entity.Order, old entity.OrderStatus, actorID string) {
	update := entity.StatusUpdate{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		OldStatus: old,
		NewStatus: order.Status,
		ActorID:   actorID,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Statuses.InsertStatusUpdate(ctx, &update); err != nil {
		c.Log.Error("qrcode-usecase", fmt.Sprintf("failed to insert status update: %v", err), "emitStatusChange", order.ID)
	}

	if c.Producer != nil {
		event := converter.StatusChangeToEvent(order, old, actorID)
		if err := c.Producer.SendStatusUpdate(event); err != nil {
			c.Log.Error("qrcode-usecase", fmt.Sprintf("failed to publish status event: %v", err), "emitStatusChange", order.ID)
		}
	}
}
