package usecase

import (
	"context"
	"fmt"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/internal/metrics"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/internal/repository"
	"load-tracking-service/src/pkg/geo"
	httpError "load-tracking-service/src/pkg/http-error"
	"load-tracking-service/src/pkg/log"
	"load-tracking-service/src/pkg/token"
	"load-tracking-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type LocationUseCase struct {
	Log       log.Log
	Validate  *validator.Validate
	Config    *viper.Viper
	Orders    OrderStore
	Locations LocationStore
	Tracking  TrackingStore
}

func NewLocationUseCase(
	logger log.Log,
	validate *validator.Validate,
	cfg *viper.Viper,
	orders OrderStore,
	locations LocationStore,
	tracking TrackingStore,
) *LocationUseCase {
	return &LocationUseCase{
		Log:       logger,
		Validate:  validate,
		Config:    cfg,
		Orders:    orders,
		Locations: locations,
		Tracking:  tracking,
	}
}

// StartTracking opens a tracking session for an order. A driver has at most
// one active session; starting a new one stops the previous session first.
func (c *LocationUseCase) StartTracking(ctx context.Context, claim *token.Claim, request *model.StartTrackingRequest) utils.Result {
	var result utils.Result

	if !claim.IsDriver() {
		errObj := httpError.NewForbidden()
		errObj.Message = "only drivers can start tracking"
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
		c.Log.Error("location-usecase", fmt.Sprintf("find order: %v", err), "StartTracking", request.OrderID)
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

	previous, err := c.Tracking.SetActiveOrder(ctx, claim.UserID, order.ID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to start tracking session"
		result.Error = errObj
		c.Log.Error("location-usecase", fmt.Sprintf("set active order: %v", err), "StartTracking", order.ID)
		return result
	}

	response := model.TrackingSessionResponse{OrderID: order.ID, Active: true}
	if previous != "" && previous != order.ID {
		response.PreviousOrderID = &previous
		c.Log.Info("location-usecase", fmt.Sprintf("stopped previous session for order %s", previous), "StartTracking", claim.UserID)
	}
	result.Data = response
	return result
}

func (c *LocationUseCase) StopTracking(ctx context.Context, claim *token.Claim) utils.Result {
	var result utils.Result

	if !claim.IsDriver() {
		errObj := httpError.NewForbidden()
		errObj.Message = "only drivers can stop tracking"
		result.Error = errObj
		return result
	}

	if err := c.Tracking.ClearActiveOrder(ctx, claim.UserID); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to stop tracking session"
		result.Error = errObj
		c.Log.Error("location-usecase", fmt.Sprintf("clear session: %v", err), "StopTracking", claim.UserID)
		return result
	}

	result.Data = model.TrackingSessionResponse{Active: false}
	return result
}

// RecordLocation persists one captured sample. Samples are throttled: a
// sample is accepted when either the minimum interval has elapsed or the
// device moved farther than the minimum distance since the last accepted one.
func (c *LocationUseCase) RecordLocation(ctx context.Context, claim *token.Claim, request *model.RecordLocationRequest) utils.Result {
	var result utils.Result

	if !claim.IsDriver() {
		errObj := httpError.NewForbidden()
		errObj.Message = "only drivers can report locations"
		result.Error = errObj
		return result
	}

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if err := geo.ValidateCoordinates(request.Latitude, request.Longitude); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = err.Error()
		result.Error = errObj
		return result
	}

	activeOrder, err := c.Tracking.GetActiveOrder(ctx, claim.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to resolve tracking session"
		result.Error = errObj
		c.Log.Error("location-usecase", fmt.Sprintf("get active order: %v", err), "RecordLocation", claim.UserID)
		return result
	}
	if activeOrder == "" || activeOrder != request.OrderID {
		errObj := httpError.NewConflict()
		errObj.Message = "no active tracking session for this order"
		result.Error = errObj
		return result
	}

	recordedAt := time.Now().UTC()
	if request.RecordedAt != nil {
		recordedAt = request.RecordedAt.UTC()
	}
	point := geo.Point{Latitude: request.Latitude, Longitude: request.Longitude}

	last, err := c.Tracking.GetLastSample(ctx, claim.UserID)
	if err != nil {
		c.Log.Error("location-usecase", fmt.Sprintf("get last sample: %v", err), "RecordLocation", claim.UserID)
		// treat unknown throttle state as no previous sample
		last = nil
	}
	if last != nil && c.throttled(last, point, recordedAt) {
		metrics.LocationUpdatesThrottledTotal.Inc()
		result.Data = model.RecordLocationResponse{Accepted: false, Reason: "throttled"}
		return result
	}

	wkt := geo.ToPostGISPoint(point)
	update := &entity.LocationUpdate{
		ID:         uuid.NewString(),
		OrderID:    request.OrderID,
		DriverID:   claim.UserID,
		Location:   wkt,
		Accuracy:   request.Accuracy,
		Speed:      request.Speed,
		Heading:    request.Heading,
		Battery:    request.Battery,
		RecordedAt: recordedAt,
	}

	if err := c.Locations.Insert(ctx, update); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to persist location update"
		result.Error = errObj
		c.Log.Error("location-usecase", fmt.Sprintf("insert location: %v", err), "RecordLocation", request.OrderID)
		return result
	}

	// denormalized last-known locations; failures are logged, the sample
	// itself is already durable
	if err := c.Orders.UpdateLastLocation(ctx, request.OrderID, wkt, recordedAt); err != nil {
		c.Log.Error("location-usecase", fmt.Sprintf("update order last location: %v", err), "RecordLocation", request.OrderID)
	}
	if err := c.Locations.UpdateDriverLastLocation(ctx, claim.UserID, wkt, recordedAt); err != nil {
		c.Log.Error("location-usecase", fmt.Sprintf("update driver last location: %v", err), "RecordLocation", claim.UserID)
	}

	sample := &repository.TrackingSample{
		Latitude:   point.Latitude,
		Longitude:  point.Longitude,
		RecordedAt: recordedAt,
	}
	if err := c.Tracking.SetLastSample(ctx, claim.UserID, sample); err != nil {
		c.Log.Error("location-usecase", fmt.Sprintf("set last sample: %v", err), "RecordLocation", claim.UserID)
	}

	metrics.LocationUpdatesAcceptedTotal.Inc()
	result.Data = model.RecordLocationResponse{Accepted: true}
	return result
}

func (c *LocationUseCase) throttled(last *repository.TrackingSample, point geo.Point, recordedAt time.Time) bool {
	minInterval := time.Duration(c.Config.GetInt("location.min_interval_seconds")) * time.Second
	if minInterval <= 0 {
		minInterval = 30 * time.Second
	}
	minDistance := c.Config.GetFloat64("location.min_distance_meters")
	if minDistance <= 0 {
		minDistance = 25
	}

	elapsed := recordedAt.Sub(last.RecordedAt)
	if elapsed >= minInterval {
		return false
	}

	distanceMeters := geo.Haversine(geo.Point{Latitude: last.Latitude, Longitude: last.Longitude}, point) * 1000
	return distanceMeters < minDistance
}
