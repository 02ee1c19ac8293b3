package usecase

import (
	"context"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/internal/repository"
)

// In-memory fakes backing the usecase tests. Error fields inject failures
// per method; zero values behave like an empty, healthy store.

type fakeOrderStore struct {
	orders map[string]*entity.Order

	insertErr error
	findErr   error
	assignErr error
	updateErr error

	deleted       []string
	statusUpdates []string
	assignDenied  bool
	updateDenied  bool
}

func newFakeOrderStore(orders ...*entity.Order) *fakeOrderStore {
	s := &fakeOrderStore{orders: map[string]*entity.Order{}}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *fakeOrderStore) Insert(ctx context.Context, order *entity.Order) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.orders[order.ID] = order
	return nil
}

func (s *fakeOrderStore) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.orders[id], nil
}

func (s *fakeOrderStore) AssignDriver(ctx context.Context, orderID, driverID string) (bool, error) {
	if s.assignErr != nil {
		return false, s.assignErr
	}
	if s.assignDenied {
		return false, nil
	}
	order, ok := s.orders[orderID]
	if !ok || order.Status != entity.StatusPending || order.AssignedDriverID != nil {
		return false, nil
	}
	order.Status = entity.StatusAssigned
	order.AssignedDriverID = &driverID
	return true, nil
}

func (s *fakeOrderStore) UpdateStatus(ctx context.Context, orderID string, from, to entity.OrderStatus) (bool, error) {
	if s.updateErr != nil {
		return false, s.updateErr
	}
	if s.updateDenied {
		return false, nil
	}
	order, ok := s.orders[orderID]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	s.statusUpdates = append(s.statusUpdates, string(from)+">"+string(to))
	return true, nil
}

func (s *fakeOrderStore) UpdateQRBinding(ctx context.Context, orderID, qrCodeID, qrData, qrSignature string, expiresAt time.Time) error {
	order, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	order.QRCodeID = &qrCodeID
	order.QRCodeData = &qrData
	order.QRCodeSignature = &qrSignature
	order.QRCodeExpiresAt = &expiresAt
	return nil
}

func (s *fakeOrderStore) UpdateLastLocation(ctx context.Context, orderID, location string, at time.Time) error {
	if order, ok := s.orders[orderID]; ok {
		order.LastLocation = &location
		order.LastLocationUpdate = &at
	}
	return nil
}

func (s *fakeOrderStore) Delete(ctx context.Context, orderID string) error {
	delete(s.orders, orderID)
	s.deleted = append(s.deleted, orderID)
	return nil
}

type fakeQRCodeStore struct {
	codes map[string]*entity.QRCode

	insertErr    error
	updateURLErr error

	deleted []string
}

func newFakeQRCodeStore() *fakeQRCodeStore {
	return &fakeQRCodeStore{codes: map[string]*entity.QRCode{}}
}

func (s *fakeQRCodeStore) Insert(ctx context.Context, code *entity.QRCode) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.codes[code.ID] = code
	return nil
}

func (s *fakeQRCodeStore) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	if s.updateURLErr != nil {
		return s.updateURLErr
	}
	if code, ok := s.codes[id]; ok {
		code.ImageURL = &imageURL
	}
	return nil
}

func (s *fakeQRCodeStore) Delete(ctx context.Context, id string) error {
	delete(s.codes, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeActivationStore struct {
	activations map[string]*entity.LoadActivation

	insertErr error
	findErr   error
}

func newFakeActivationStore(activations ...*entity.LoadActivation) *fakeActivationStore {
	s := &fakeActivationStore{activations: map[string]*entity.LoadActivation{}}
	for _, a := range activations {
		s.activations[a.OrderID] = a
	}
	return s
}

func (s *fakeActivationStore) Insert(ctx context.Context, activation *entity.LoadActivation) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if _, exists := s.activations[activation.OrderID]; exists {
		return repository.ErrDuplicateActivation
	}
	s.activations[activation.OrderID] = activation
	return nil
}

func (s *fakeActivationStore) FindByOrderID(ctx context.Context, orderID string) (*entity.LoadActivation, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.activations[orderID], nil
}

type fakeStatusStore struct {
	updates []*entity.StatusUpdate
}

func (s *fakeStatusStore) InsertStatusUpdate(ctx context.Context, update *entity.StatusUpdate) error {
	s.updates = append(s.updates, update)
	return nil
}

type fakeAuditor struct {
	actions []string
}

func (a *fakeAuditor) Record(ctx context.Context, tenantID, actorID, action string, targetID *string, metadata map[string]interface{}) {
	a.actions = append(a.actions, action)
}

type fakePublisher struct {
	events []*model.OrderStatusEvent
}

func (p *fakePublisher) SendStatusUpdate(event *model.OrderStatusEvent) error {
	p.events = append(p.events, event)
	return nil
}

type fakeRenderer struct {
	err error
}

func (r *fakeRenderer) Render(data string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("png:" + data), nil
}

type fakeStorage struct {
	uploadErr error

	uploaded []string
	removed  []string
}

func (s *fakeStorage) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploaded = append(s.uploaded, objectName)
	return "https://cdn.example.com/" + objectName, nil
}

func (s *fakeStorage) Remove(ctx context.Context, objectName string) error {
	s.removed = append(s.removed, objectName)
	return nil
}

type fakeGeocoder struct {
	address string
	err     error
}

func (g *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.address, nil
}

type fakeLocationStore struct {
	insertErr error

	updates        []*entity.LocationUpdate
	driverLocation string
}

func (s *fakeLocationStore) Insert(ctx context.Context, update *entity.LocationUpdate) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.updates = append(s.updates, update)
	return nil
}

func (s *fakeLocationStore) UpdateDriverLastLocation(ctx context.Context, driverID, location string, at time.Time) error {
	s.driverLocation = location
	return nil
}

type fakeTrackingStore struct {
	sessions map[string]string
	samples  map[string]*repository.TrackingSample
}

func newFakeTrackingStore() *fakeTrackingStore {
	return &fakeTrackingStore{
		sessions: map[string]string{},
		samples:  map[string]*repository.TrackingSample{},
	}
}

func (s *fakeTrackingStore) GetActiveOrder(ctx context.Context, driverID string) (string, error) {
	return s.sessions[driverID], nil
}

func (s *fakeTrackingStore) SetActiveOrder(ctx context.Context, driverID, orderID string) (string, error) {
	previous := s.sessions[driverID]
	s.sessions[driverID] = orderID
	if previous != orderID {
		delete(s.samples, driverID)
	}
	return previous, nil
}

func (s *fakeTrackingStore) ClearActiveOrder(ctx context.Context, driverID string) error {
	delete(s.sessions, driverID)
	delete(s.samples, driverID)
	return nil
}

func (s *fakeTrackingStore) GetLastSample(ctx context.Context, driverID string) (*repository.TrackingSample, error) {
	return s.samples[driverID], nil
}

func (s *fakeTrackingStore) SetLastSample(ctx context.Context, driverID string, sample *repository.TrackingSample) error {
	s.samples[driverID] = sample
	return nil
}

type fakeUserStore struct {
	users map[string]*entity.User

	insertErr error

	passwordResets map[string]string
}

func newFakeUserStore(users ...*entity.User) *fakeUserStore {
	s := &fakeUserStore{users: map[string]*entity.User{}, passwordResets: map[string]string{}}
	for _, u := range users {
		s.users[u.UserID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, tenantID, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.TenantID == tenantID && u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Insert(ctx context.Context, user *entity.User) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.users[user.UserID] = user
	return nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	s.passwordResets[userID] = passwordHash
	if u, ok := s.users[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}
