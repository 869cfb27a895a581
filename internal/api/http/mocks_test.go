package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

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

// MockItemService
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) Get(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemService) List(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemService) SetMaintenance(ctx context.Context, itemID int32, on bool, actor domain.Actor) (*domain.Item, error) {
	args := m.Called(ctx, itemID, on, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListForRecipient(ctx context.Context, recipientID, page, pageSize int32) ([]domain.NotificationEvent, int32, error) {
	args := m.Called(ctx, recipientID, page, pageSize)
	return args.Get(0).([]domain.NotificationEvent), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkRead(ctx context.Context, recipientID int32, eventID string) error {
	args := m.Called(ctx, recipientID, eventID)
	return args.Error(0)
}
