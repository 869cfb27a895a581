package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) List(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) UpdateStatus(ctx context.Context, id int32, status domain.ItemStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

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
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListDueForCompletion(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, now)
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

// MockHistoryRepo
type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Append(ctx context.Context, rec *domain.StatusHistoryRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockHistoryRepo) ListByReservation(ctx context.Context, reservationID int32) ([]domain.StatusHistoryRecord, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]domain.StatusHistoryRecord), args.Error(1)
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

// mockStore bundles the repo mocks behind the Store interface. WithinTx runs
// fn against the same store, which matches the nested-transaction reuse of the
// postgres implementation.
type mockStore struct {
	items         *MockItemRepo
	reservations  *MockReservationRepo
	history       *MockHistoryRepo
	notifications *MockNotificationRepo
	users         *MockUserRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		items:         new(MockItemRepo),
		reservations:  new(MockReservationRepo),
		history:       new(MockHistoryRepo),
		notifications: new(MockNotificationRepo),
		users:         new(MockUserRepo),
	}
}

func (s *mockStore) Items() repository.ItemRepository                  { return s.items }
func (s *mockStore) Reservations() repository.ReservationRepository    { return s.reservations }
func (s *mockStore) History() repository.HistoryRepository             { return s.history }
func (s *mockStore) Notifications() repository.NotificationRepository  { return s.notifications }
func (s *mockStore) Users() repository.UserRepository                  { return s.users }
func (s *mockStore) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}
