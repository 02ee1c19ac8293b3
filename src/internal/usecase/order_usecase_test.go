package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderUseCaseFixture struct {
	uc          *OrderUseCase
	orders      *fakeOrderStore
	qrCodes     *fakeQRCodeStore
	activations *fakeActivationStore
	statuses    *fakeStatusStore
	storage     *fakeStorage
	renderer    *fakeRenderer
	geocoder    *fakeGeocoder
	auditor     *fakeAuditor
	publisher   *fakePublisher
}

func newOrderUseCaseFixture(t *testing.T) *orderUseCaseFixture {
	t.Helper()
	f := &orderUseCaseFixture{
		orders:      newFakeOrderStore(),
		qrCodes:     newFakeQRCodeStore(),
		activations: newFakeActivationStore(),
		statuses:    &fakeStatusStore{},
		storage:     &fakeStorage{},
		renderer:    &fakeRenderer{},
		geocoder:    &fakeGeocoder{address: "1 Main Road, Johannesburg"},
		auditor:     &fakeAuditor{},
		publisher:   &fakePublisher{},
	}
	f.uc = NewOrderUseCase(
		log.Log{},
		validator.New(),
		testSigner(t),
		f.orders,
		f.qrCodes,
		f.activations,
		f.statuses,
		f.storage,
		f.renderer,
		f.geocoder,
		f.auditor,
		f.publisher,
	)
	return f
}

func validCreateOrderRequest() *model.CreateOrderRequest {
	return &model.CreateOrderRequest{
		OrderData: &model.OrderData{
			LoadingPoint: model.GeoPointRequest{
				Name:      "Depot North",
				Address:   "12 Harbour St",
				Latitude:  -26.2041,
				Longitude: 28.0473,
			},
			UnloadingPoint: model.GeoPointRequest{
				Name:      "Warehouse South",
				Address:   "9 Rail Ave",
				Latitude:  -29.8587,
				Longitude: 31.0218,
			},
		},
	}
}

func TestCreateOrderSuccess(t *testing.T) {
	f := newOrderUseCaseFixture(t)

	result := f.uc.CreateOrder(context.Background(), dispatcherClaim("dispatcher-1"), validCreateOrderRequest())
	require.NoError(t, result.Error)

	response := result.Data.(model.CreateOrderResponse)
	assert.Equal(t, entity.StatusPending, response.Order.Status)
	assert.NotEmpty(t, response.QRCodeURL)
	require.NotNil(t, response.QRCode.ImageURL)
	assert.Equal(t, response.QRCodeURL, *response.QRCode.ImageURL)

	// persisted order carries the QR binding
	order := f.orders.orders[response.Order.ID]
	require.NotNil(t, order)
	require.NotNil(t, order.QRCodeID)
	assert.Equal(t, response.QRCode.ID, *order.QRCodeID)
	require.NotNil(t, order.QRCodeData)

	// the embedded payload round-trips and verifies
	payload, err := model.DecodeQRPayload(*order.QRCodeData)
	require.NoError(t, err)
	assert.Equal(t, order.ID, payload.OrderID)
	assert.True(t, f.uc.Signer.Verify(payload.OrderID, payload.Timestamp, payload.Signature))

	assert.Len(t, f.storage.uploaded, 1)
	assert.Empty(t, f.storage.removed)
	assert.Equal(t, []string{entity.AuditOrderCreated}, f.auditor.actions)
}

func TestCreateOrderForbiddenForDrivers(t *testing.T) {
	f := newOrderUseCaseFixture(t)

	result := f.uc.CreateOrder(context.Background(), driverClaim("driver-1"), validCreateOrderRequest())
	assert.Equal(t, 403, errCode(t, result.Error))
}

func TestCreateOrderRejectsInvalidCoordinates(t *testing.T) {
	f := newOrderUseCaseFixture(t)

	request := validCreateOrderRequest()
	request.OrderData.Waypoints = []model.GeoPointRequest{
		{Name: "Bad Stop", Address: "nowhere", Latitude: 95, Longitude: 10},
	}

	result := f.uc.CreateOrder(context.Background(), dispatcherClaim("dispatcher-1"), request)
	assert.Equal(t, 400, errCode(t, result.Error))
	assert.Empty(t, f.orders.orders)
}

func TestCreateOrderRollsBackWhenQRInsertFails(t *testing.T) {
	f := newOrderUseCaseFixture(t)
	f.qrCodes.insertErr = errors.New("qr table down")

	result := f.uc.CreateOrder(context.Background(), dispatcherClaim("dispatcher-1"), validCreateOrderRequest())
	require.Error(t, result.Error)
	assert.Equal(t, 500, errCode(t, result.Error))
	assert.Contains(t, result.Error.Error(), "insert-qr-record")
	assert.Contains(t, result.Error.Error(), "rolled back")

	assert.Empty(t, f.orders.orders)
	assert.Len(t, f.orders.deleted, 1)
	assert.Empty(t, f.storage.uploaded)
}

func TestCreateOrderRollsBackWhenRenderFails(t *testing.T) {
	f := newOrderUseCaseFixture(t)
	f.renderer.err = errors.New("render failed")

	result := f.uc.CreateOrder(context.Background(), dispatcherClaim("dispatcher-1"), validCreateOrderRequest())
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "render-qr-image")

	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.qrCodes.codes)
	assert.Len(t, f.qrCodes.deleted, 1)
}

func TestCreateOrderRollsBackWhenUploadFails(t *testing.T) {
	f := newOrderUseCaseFixture(t)
	f.storage.uploadErr = errors.New("bucket unreachable")

	result := f.uc.CreateOrder(context.Background(), dispatcherClaim("dispatcher-1"), validCreateOrderRequest())
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "upload-qr-image")

	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.qrCodes.codes)
	assert.Empty(t, f.storage.uploaded)
}

func TestCreateOrderRollsBackWhenBindFails(t *testing.T) {
	f := newOrderUseCaseFixture(t)
	f.qrCodes.updateURLErr = errors.New("update lost")

	result := f.uc.CreateOrder(context.Background(), dispatcherClaim("dispatcher-1"), validCreateOrderRequest())
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "bind-qr-image-url")

	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.qrCodes.codes)
	// the uploaded object is removed during compensation
	assert.Len(t, f.storage.removed, 1)
	assert.Equal(t, f.storage.uploaded, f.storage.removed)
}

func assignedOrder(id, driverID string) *entity.Order {
	order := pendingOrder(id)
	order.Status = entity.StatusAssigned
	order.AssignedDriverID = &driverID
	return order
}

func TestActivateLoadSuccess(t *testing.T) {
	f := newOrderUseCaseFixture(t)
	order := assignedOrder("order-1", "driver-1")
	f.orders.orders[order.ID] = order

	result := f.uc.ActivateLoad(context.Background(), driverClaim("driver-1"), &model.ActivateLoadRequest{
		OrderID:  order.ID,
		Location: json.RawMessage(`{"latitude":-26.2041,"longitude":28.0473}`),
		Notes:    "gate 4",
	})
	require.NoError(t, result.Error)

	response := result.Data.(model.ActivationResponse)
	assert.Equal(t, entity.StatusActivated, response.Order.Status)
	require.NotNil(t, response.Activation.Location)
	assert.Contains(t, *response.Activation.Location, "SRID=4326;POINT(")
	require.NotNil(t, response.Activation.LocationAddress)
	assert.Equal(t, "1 Main Road, Johannesburg", *response.Activation.LocationAddress)
	require.NotNil(t, response.Activation.Notes)
	assert.Equal(t, "gate 4", *response.Activation.Notes)

	assert.Equal(t, entity.StatusActivated, order.Status)
	require.Len(t, f.statuses.updates, 1)
	assert.Equal(t, entity.StatusAssigned, f.statuses.updates[0].OldStatus)
	assert.Equal(t, []string{entity.AuditLoadActivated}, f.auditor.actions)
}

func TestActivateLoadGeocodeFailureDoesNotBlock(t *testing.T) {
	f := newOrderUseCaseFixture(t)
	f.geocoder.err = errors.New("quota exceeded")
	order := assignedOrder("order-1", "driver-1")
	f.orders.orders[order.ID] = order

	result := f.uc.ActivateLoad(context.Background(), driverClaim("driver-1"), &model.ActivateLoadRequest{
		OrderID:  order.ID,
		Location: json.RawMessage(`{"latitude":-26.2041,"longitude":28.0473}`),
	})
	require.NoError(t, result.Error)

	response := result.Data.(model.ActivationResponse)
	assert.Nil(t, response.Activation.LocationAddress)
	assert.Equal(t, entity.StatusActivated, response.Order.Status)
}

func TestActivateLoadDuplicateActivation(t *testing.T) {
	f := newOrderUseCaseFixture(t)
	order := assignedOrder("order-1", "driver-1")
	f.orders.orders[order.ID] = order
	f.activations.activations[order.ID] = &entity.LoadActivation{
		ID:          "activation-1",
		OrderID:     order.ID,
		DriverID:    "driver-1",
		ActivatedAt: time.Now().UTC(),
	}

	result := f.uc.ActivateLoad(context.Background(), driverClaim("driver-1"), &model.ActivateLoadRequest{OrderID: order.ID})
	assert.Equal(t, 409, errCode(t, result.Error))
	assert.Contains(t, result.Error.Error(), "already been activated")
}

func TestActivateLoadWrongStatus(t *testing.T) {
	f := newOrderUseCaseFixture(t)
	order := assignedOrder("order-1", "driver-1")
	order.Status = entity.StatusInProgress
	f.orders.orders[order.ID] = order

	result := f.uc.ActivateLoad(context.Background(), driverClaim("driver-1"), &model.ActivateLoadRequest{OrderID: order.ID})
	assert.Equal(t, 409, errCode(t, result.Error))
}

func TestActivateLoadNotAssignedDriver(t *testing.T) {
	f := newOrderUseCaseFixture(t)
	order := assignedOrder("order-1", "driver-other")
	f.orders.orders[order.ID] = order

	result := f.uc.ActivateLoad(context.Background(), driverClaim("driver-1"), &model.ActivateLoadRequest{OrderID: order.ID})
	assert.Equal(t, 403, errCode(t, result.Error))
}

func TestActivateLoadForbiddenForDispatchers(t *testing.T) {
	f := newOrderUseCaseFixture(t)

	result := f.uc.ActivateLoad(context.Background(), dispatcherClaim("dispatcher-1"), &model.ActivateLoadRequest{OrderID: "order-1"})
	assert.Equal(t, 403, errCode(t, result.Error))
}

func TestActivateLoadOrderNotFound(t *testing.T) {
	f := newOrderUseCaseFixture(t)

	result := f.uc.ActivateLoad(context.Background(), driverClaim("driver-1"), &model.ActivateLoadRequest{OrderID: "order-missing"})
	assert.Equal(t, 404, errCode(t, result.Error))
}

func TestActivateLoadInvalidLocation(t *testing.T) {
	f := newOrderUseCaseFixture(t)
	order := assignedOrder("order-1", "driver-1")
	f.orders.orders[order.ID] = order

	result := f.uc.ActivateLoad(context.Background(), driverClaim("driver-1"), &model.ActivateLoadRequest{
		OrderID:  order.ID,
		Location: json.RawMessage(`{"latitude":123.4,"longitude":28.0}`),
	})
	assert.Equal(t, 400, errCode(t, result.Error))
	assert.Empty(t, f.activations.activations)
}
