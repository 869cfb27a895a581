package repository

import (
	"context"
	"time"

	"equiptrack-backend/internal/domain"
)

// ReservationFilter narrows List queries. Nil fields are ignored. Results are
// always ordered by created_on descending.
type ReservationFilter struct {
	ItemID   *int32
	UserID   *int32
	Status   *domain.ReservationStatus
	From     *time.Time
	To       *time.Time
	Page     int32
	PageSize int32
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	UpdateStatus(ctx context.Context, id int32, status domain.ItemStatus) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, int32, error)

	// ListOccupying returns all reservations whose status holds an interval
	// in the occupancy index (approved or active), used to rebuild the index
	// at startup.
	ListOccupying(ctx context.Context) ([]domain.Reservation, error)

	// ListNonTerminalByItem returns the item's pending, approved and active
	// reservations, used by the maintenance cascade and status derivation.
	ListNonTerminalByItem(ctx context.Context, itemID int32) ([]domain.Reservation, error)

	// ListDueForActivation returns approved reservations with start_date <= now.
	ListDueForActivation(ctx context.Context, now time.Time) ([]domain.Reservation, error)

	// ListDueForCompletion returns active reservations with return_date <= now.
	ListDueForCompletion(ctx context.Context, now time.Time) ([]domain.Reservation, error)

	// UpdateStatusVersioned commits the reservation's status fields with a
	// compare-and-swap on expectedVersion. Returns domain.ErrStaleWrite when
	// the stored version no longer matches; on success the reservation's
	// Version is expectedVersion+1.
	UpdateStatusVersioned(ctx context.Context, r *domain.Reservation, expectedVersion int32) error

	// UpdateNotes edits the free-text notes; the only field mutable after a
	// reservation reaches a terminal status.
	UpdateNotes(ctx context.Context, id int32, notes string) error
}

// HistoryRepository is append-only. There is deliberately no update or
// delete; corrections are recorded as new compensating entries.
type HistoryRepository interface {
	Append(ctx context.Context, rec *domain.StatusHistoryRecord) error
	ListByReservation(ctx context.Context, reservationID int32) ([]domain.StatusHistoryRecord, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, ev *domain.NotificationEvent) error
	ListByRecipient(ctx context.Context, recipientID int32, limit, offset int32) ([]domain.NotificationEvent, int32, error)
	ListUndelivered(ctx context.Context, limit int32) ([]domain.NotificationEvent, error)
	MarkDelivered(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id string, recipientID int32) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
}

// Store bundles the repositories with transactional execution. WithinTx runs
// fn against a Store bound to one database transaction; a transition's
// conflict check, status write, version bump and history append commit
// together through it or not at all.
type Store interface {
	Items() ItemRepository
	Reservations() ReservationRepository
	History() HistoryRepository
	Notifications() NotificationRepository
	Users() UserRepository

	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
