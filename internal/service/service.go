package service

import (
	"context"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

// ReservationService is the workflow engine: every status change of a
// reservation goes through Transition, including the scheduler sweep's
// time-driven ones.
type ReservationService interface {
	Create(ctx context.Context, itemID, userID int32, start, end time.Time, notes string) (*domain.Reservation, error)
	Transition(ctx context.Context, reservationID int32, target domain.ReservationStatus, actor domain.Actor, version int32, reason string) (*domain.Reservation, error)
	Get(ctx context.Context, id int32) (*domain.Reservation, error)
	List(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, int32, error)
	History(ctx context.Context, reservationID int32) ([]domain.StatusHistoryRecord, error)
	UpdateNotes(ctx context.Context, id int32, actor domain.Actor, notes string) error
}

type ItemService interface {
	Get(ctx context.Context, id int32) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	SetMaintenance(ctx context.Context, itemID int32, on bool, actor domain.Actor) (*domain.Item, error)
}

type NotificationService interface {
	ListForRecipient(ctx context.Context, recipientID, page, pageSize int32) ([]domain.NotificationEvent, int32, error)
	MarkRead(ctx context.Context, recipientID int32, eventID string) error
}

type EmailService interface {
	SendReservationEvent(ctx context.Context, toEmail, toName string, ev *domain.NotificationEvent) error
}
