package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/internal/gateway/storage"
	"load-tracking-service/src/internal/metrics"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/internal/model/converter"
	"load-tracking-service/src/internal/repository"
	"load-tracking-service/src/pkg/geo"
	httpError "load-tracking-service/src/pkg/http-error"
	"load-tracking-service/src/pkg/log"
	"load-tracking-service/src/pkg/saga"
	"load-tracking-service/src/pkg/signature"
	"load-tracking-service/src/pkg/token"
	"load-tracking-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrderUseCase struct {
	Log         log.Log
	Validate    *validator.Validate
	Signer      *signature.Signer
	Orders      OrderStore
	QRCodes     QRCodeStore
	Activations ActivationStore
	Statuses    StatusStore
	Storage     storage.ObjectStorage
	Renderer    QRRenderer
	Geocoder    ReverseGeocoder
	Auditor     Auditor
	Producer    StatusPublisher
}

func NewOrderUseCase(
	logger log.Log,
	validate *validator.Validate,
	signer *signature.Signer,
	orders OrderStore,
	qrCodes QRCodeStore,
	activations ActivationStore,
	statuses StatusStore,
	objectStorage storage.ObjectStorage,
	renderer QRRenderer,
	geocoder ReverseGeocoder,
	auditor Auditor,
	producer StatusPublisher,
) *OrderUseCase {
	return &OrderUseCase{
		Log:         logger,
		Validate:    validate,
		Signer:      signer,
		Orders:      orders,
		QRCodes:     qrCodes,
		Activations: activations,
		Statuses:    statuses,
		Storage:     objectStorage,
		Renderer:    renderer,
		Geocoder:    geocoder,
		Auditor:     auditor,
		Producer:    producer,
	}
}

// CreateOrder runs the multi-step creation pipeline. The backing store has
// no cross-call transactions, so each step carries a compensation and the
// saga rolls back everything already done when a later step fails.
func (c *OrderUseCase) CreateOrder(ctx context.Context, claim *token.Claim, request *model.CreateOrderRequest) utils.Result {
	var result utils.Result

	if !claim.IsAdminOrDispatcher() {
		errObj := httpError.NewForbidden()
		errObj.Message = "only admins and dispatchers can create orders"
		result.Error = errObj
		return result
	}

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "CreateOrder", utils.ConvertString(err))
		return result
	}

	data := request.OrderData
	for _, point := range append([]model.GeoPointRequest{data.LoadingPoint, data.UnloadingPoint}, data.Waypoints...) {
		if err := geo.ValidateCoordinates(point.Latitude, point.Longitude); err != nil {
			errObj := httpError.NewBadRequest()
			errObj.Message = fmt.Sprintf("invalid coordinates for %q: %v", point.Name, err)
			result.Error = errObj
			return result
		}
	}

	now := time.Now().UTC()
	order := c.buildOrder(claim.TenantID, data, now)

	payload := model.QRPayload{
		OrderID:   order.ID,
		Timestamp: now.Unix(),
	}
	payload.Signature = c.Signer.Sign(payload.OrderID, payload.Timestamp)
	encodedPayload, err := payload.Encode()
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to encode QR payload"
		result.Error = errObj
		c.Log.Error("order-usecase", fmt.Sprintf("encode payload: %v", err), "CreateOrder", order.ID)
		return result
	}

	qrCode := &entity.QRCode{
		ID:           uuid.NewString(),
		OrderID:      order.ID,
		TrackingCode: trackingCode(order.OrderNumber),
		Payload:      encodedPayload,
		ExpiresAt:    now.Add(qrMaxAge),
		CreatedAt:    now,
	}

	var imageBytes []byte
	var imageURL string
	objectName := fmt.Sprintf("qr_order_%s_%d.png", order.ID, now.Unix())

	pipeline := saga.New(c.Log).
		AddStep(saga.Step{
			Name: "insert-order",
			Run: func(ctx context.Context) error {
				return c.Orders.Insert(ctx, order)
			},
			Compensate: func(ctx context.Context) error {
				return c.Orders.Delete(ctx, order.ID)
			},
		}).
		AddStep(saga.Step{
			Name: "insert-qr-record",
			Run: func(ctx context.Context) error {
				return c.QRCodes.Insert(ctx, qrCode)
			},
			Compensate: func(ctx context.Context) error {
				return c.QRCodes.Delete(ctx, qrCode.ID)
			},
		}).
		AddStep(saga.Step{
			Name: "render-qr-image",
			Run: func(ctx context.Context) error {
				var renderErr error
				imageBytes, renderErr = c.Renderer.Render(encodedPayload)
				return renderErr
			},
		}).
		AddStep(saga.Step{
			Name: "upload-qr-image",
			Run: func(ctx context.Context) error {
				var uploadErr error
				imageURL, uploadErr = c.Storage.Upload(ctx, objectName, imageBytes, "image/png")
				return uploadErr
			},
			Compensate: func(ctx context.Context) error {
				return c.Storage.Remove(ctx, objectName)
			},
		}).
		AddStep(saga.Step{
			Name: "bind-qr-image-url",
			Run: func(ctx context.Context) error {
				return c.QRCodes.UpdateImageURL(ctx, qrCode.ID, imageURL)
			},
		}).
		AddStep(saga.Step{
			Name: "bind-order-qr",
			Run: func(ctx context.Context) error {
				return c.Orders.UpdateQRBinding(ctx, order.ID, qrCode.ID, encodedPayload, payload.Signature, qrCode.ExpiresAt)
			},
		})

	if err := pipeline.Execute(ctx); err != nil {
		var stepErr *saga.StepError
		step := "unknown"
		if errors.As(err, &stepErr) {
			step = stepErr.Step
		}
		metrics.OrderCreationRollbacksTotal.WithLabelValues(step).Inc()

		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("order creation failed at %s, all changes rolled back", step)
		result.Error = errObj
		c.Log.Error("order-usecase", fmt.Sprintf("pipeline failed: %v", err), "CreateOrder", order.ID)
		return result
	}

	order.QRCodeID = &qrCode.ID
	order.QRCodeData = &encodedPayload
	order.QRCodeSignature = &payload.Signature
	qrCode.ImageURL = &imageURL

	c.Auditor.Record(ctx, order.TenantID, claim.UserID, entity.AuditOrderCreated, &order.ID,
		map[string]interface{}{"order_number": order.OrderNumber})
	metrics.OrdersCreatedTotal.Inc()

	result.Data = model.CreateOrderResponse{
		Order:     converter.OrderToProjection(order),
		QRCode:    converter.QRCodeToResponse(qrCode),
		QRCodeURL: imageURL,
	}
	return result
}

// ActivateLoad records the one-time driver confirmation that physical
// pickup has begun and moves the order from assigned to activated.
func (c *OrderUseCase) ActivateLoad(ctx context.Context, claim *token.Claim, request *model.ActivateLoadRequest) utils.Result {
	var result utils.Result

	if !claim.IsDriver() {
		errObj := httpError.NewForbidden()
		errObj.Message = "only drivers can activate loads"
		result.Error = errObj
		return result
	}

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	order, err := c.Orders.FindByID(ctx, request.OrderID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load order"
		result.Error = errObj
		c.Log.Error("order-usecase", fmt.Sprintf("find order: %v", err), "ActivateLoad", request.OrderID)
		return result
	}
	if order == nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("order %s not found", request.OrderID)
		result.Error = errObj
		return result
	}
	if !claim.SameTenant(order.TenantID) {
		errObj := httpError.NewForbidden()
		errObj.Message = "access denied"
		result.Error = errObj
		return result
	}
	if order.AssignedDriverID == nil || *order.AssignedDriverID != claim.UserID {
		errObj := httpError.NewForbidden()
		errObj.Message = "you are not the assigned driver for this order"
		result.Error = errObj
		return result
	}
	if order.Status != entity.StatusAssigned {
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("order cannot be activated from status %s", order.Status)
		result.Error = errObj
		return result
	}

	activation := &entity.LoadActivation{
		ID:          uuid.NewString(),
		OrderID:     order.ID,
		DriverID:    claim.UserID,
		ActivatedAt: time.Now().UTC(),
	}
	if request.Notes != "" {
		activation.Notes = &request.Notes
	}
	if len(request.DeviceInfo) > 0 {
		activation.DeviceInfo = request.DeviceInfo
	}

	if len(request.Location) > 0 {
		point, err := geo.ParseLocation(request.Location)
		if err != nil {
			errObj := httpError.NewBadRequest()
			errObj.Message = fmt.Sprintf("invalid activation location: %v", err)
			result.Error = errObj
			return result
		}
		wkt := geo.ToPostGISPoint(point)
		activation.Location = &wkt

		address := request.LocationAddress
		if address == "" && c.Geocoder != nil {
			// best effort, an unresolved address never blocks activation
			resolved, err := c.Geocoder.ReverseGeocode(ctx, point.Latitude, point.Longitude)
			if err != nil {
				c.Log.Error("order-usecase", fmt.Sprintf("reverse geocode failed: %v", err), "ActivateLoad", order.ID)
			} else {
				address = resolved
			}
		}
		if address != "" {
			activation.LocationAddress = &address
		}
	} else if request.LocationAddress != "" {
		activation.LocationAddress = &request.LocationAddress
	}

	if err := c.Activations.Insert(ctx, activation); err != nil {
		if errors.Is(err, repository.ErrDuplicateActivation) {
			errObj := httpError.NewConflict()
			errObj.Message = "order has already been activated"
			result.Error = errObj
			return result
		}
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to record activation"
		result.Error = errObj
		c.Log.Error("order-usecase", fmt.Sprintf("insert activation: %v", err), "ActivateLoad", order.ID)
		return result
	}

	ok, err := c.Orders.UpdateStatus(ctx, order.ID, entity.StatusAssigned, entity.StatusActivated)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to update order status"
		result.Error = errObj
		c.Log.Error("order-usecase", fmt.Sprintf("update status: %v", err), "ActivateLoad", order.ID)
		return result
	}
	if !ok {
		errObj := httpError.NewConflict()
		errObj.Message = "order status changed concurrently, activation recorded but not applied"
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "ActivateLoad", order.ID)
		return result
	}

	old := order.Status
	order.Status = entity.StatusActivated
	c.emitStatusChange(ctx, order, old, claim.UserID)

	c.Auditor.Record(ctx, order.TenantID, claim.UserID, entity.AuditLoadActivated, &order.ID, nil)
	metrics.LoadActivationsTotal.Inc()

	result.Data = model.ActivationResponse{
		Activation: activation,
		Order:      converter.OrderToProjection(order),
	}
	return result
}

func (c *OrderUseCase) buildOrder(tenantID string, data *model.OrderData, now time.Time) *entity.Order {
	orderNumber := data.OrderNumber
	if orderNumber == "" {
		orderNumber = fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), shortID())
	}

	loadingWKT := geo.ToPostGISPoint(geo.Point{Latitude: data.LoadingPoint.Latitude, Longitude: data.LoadingPoint.Longitude})
	unloadingWKT := geo.ToPostGISPoint(geo.Point{Latitude: data.UnloadingPoint.Latitude, Longitude: data.UnloadingPoint.Longitude})
	expiresAt := now.Add(qrMaxAge)

	order := &entity.Order{
		ID:                    uuid.NewString(),
		TenantID:              tenantID,
		OrderNumber:           orderNumber,
		Status:                entity.StatusPending,
		QRCodeExpiresAt:       &expiresAt,
		LoadingPointName:      data.LoadingPoint.Name,
		LoadingPointAddress:   data.LoadingPoint.Address,
		LoadingPoint:          &loadingWKT,
		LoadingWindowStart:    data.LoadingPoint.WindowStart,
		LoadingWindowEnd:      data.LoadingPoint.WindowEnd,
		UnloadingPointName:    data.UnloadingPoint.Name,
		UnloadingPointAddress: data.UnloadingPoint.Address,
		UnloadingPoint:        &unloadingWKT,
		UnloadingWindowStart:  data.UnloadingPoint.WindowStart,
		UnloadingWindowEnd:    data.UnloadingPoint.WindowEnd,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if len(data.Waypoints) > 0 {
		waypoints := make([]string, 0, len(data.Waypoints))
		for _, wp := range data.Waypoints {
			waypoints = append(waypoints, geo.ToPostGISPoint(geo.Point{Latitude: wp.Latitude, Longitude: wp.Longitude}))
		}
		if encoded, err := json.Marshal(waypoints); err == nil {
			order.Waypoints = encoded
		}
	}

	return order
}

func (c *OrderUseCase) emitStatusChange(ctx context.Context, order *entity.Order, old entity.OrderStatus, actorID string) {
	update := entity.StatusUpdate{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		OldStatus: old,
		NewStatus: order.Status,
		ActorID:   actorID,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Statuses.InsertStatusUpdate(ctx, &update); err != nil {
		c.Log.Error("order-usecase", fmt.Sprintf("failed to insert status update: %v", err), "emitStatusChange", order.ID)
	}

	if c.Producer != nil {
		event := converter.StatusChangeToEvent(order, old, actorID)
		if err := c.Producer.SendStatusUpdate(event); err != nil {
			c.Log.Error("order-usecase", fmt.Sprintf("failed to publish status event: %v", err), "emitStatusChange", order.ID)
		}
	}
}

func shortID() string {
	return strings.Split(uuid.NewString(), "-")[0]
}

func trackingCode(orderNumber string) string {
	return "TRK-" + strings.ToUpper(shortID()) + "-" + orderNumber
}
