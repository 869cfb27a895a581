package jobs

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) List(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationRepo) ListOccupying(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListNonTerminalByItem(ctx context.Context, itemID int32) ([]domain.Reservation, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListDueForActivation(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListDueForCompletion(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) UpdateStatusVersioned(ctx context.Context, r *domain.Reservation, expectedVersion int32) error {
	args := m.Called(ctx, r, expectedVersion)
	return args.Error(0)
}
func (m *MockReservationRepo) UpdateNotes(ctx context.Context, id int32, notes string) error {
	args := m.Called(ctx, id, notes)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, ev *domain.NotificationEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListByRecipient(ctx context.Context, recipientID int32, limit, offset int32) ([]domain.NotificationEvent, int32, error) {
	args := m.Called(ctx, recipientID, limit, offset)
	return args.Get(0).([]domain.NotificationEvent), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) ListUndelivered(ctx context.Context, limit int32) ([]domain.NotificationEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationEvent), args.Error(1)
}
func (m *MockNotificationRepo) MarkDelivered(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockNotificationRepo) MarkRead(ctx context.Context, id string, recipientID int32) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// mockStore exposes only the repositories the jobs touch.
type mockStore struct {
	reservations  *MockReservationRepo
	notifications *MockNotificationRepo
	users         *MockUserRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		reservations:  new(MockReservationRepo),
		notifications: new(MockNotificationRepo),
		users:         new(MockUserRepo),
	}
}

func (s *mockStore) Items() repository.ItemRepository                 { return nil }
func (s *mockStore) Reservations() repository.ReservationRepository   { return s.reservations }
func (s *mockStore) History() repository.HistoryRepository            { return nil }
func (s *mockStore) Notifications() repository.NotificationRepository { return s.notifications }
func (s *mockStore) Users() repository.UserRepository                 { return s.users }
func (s *mockStore) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}

// MockReservationService
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Create(ctx context.Context, itemID, userID int32, start, end time.Time, notes string) (*domain.Reservation, error) {
	args := m.Called(ctx, itemID, userID, start, end, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) Transition(ctx context.Context, reservationID int32, target domain.ReservationStatus, actor domain.Actor, version int32, reason string) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID, target, actor, version, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) Get(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) List(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationService) History(ctx context.Context, reservationID int32) ([]domain.StatusHistoryRecord, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]domain.StatusHistoryRecord), args.Error(1)
}
func (m *MockReservationService) UpdateNotes(ctx context.Context, id int32, actor domain.Actor, notes string) error {
	args := m.Called(ctx, id, actor, notes)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReservationEvent(ctx context.Context, toEmail, toName string, ev *domain.NotificationEvent) error {
	args := m.Called(ctx, toEmail, toName, ev)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(message any, key string) error {
	args := m.Called(message, key)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
