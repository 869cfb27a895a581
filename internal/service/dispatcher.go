package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository"
)

// Dispatcher resolves recipients for a committed transition and enqueues one
// NotificationEvent per recipient. Enqueueing is fire-and-forget: it runs
// after the transition commits and an enqueue failure is logged, never
// surfaced to the transition's caller. Delivery happens later in the
// notification job, at-least-once; the uuid id lets consumers deduplicate.
type Dispatcher struct {
	notes repository.NotificationRepository
	users repository.UserRepository
}

func NewDispatcher(notes repository.NotificationRepository, users repository.UserRepository) *Dispatcher {
	return &Dispatcher{notes: notes, users: users}
}

var kindByStatus = map[domain.ReservationStatus]string{
	domain.ReservationStatusApproved:  domain.KindReservationApproved,
	domain.ReservationStatusRejected:  domain.KindReservationRejected,
	domain.ReservationStatusActive:    domain.KindReservationActivated,
	domain.ReservationStatusCompleted: domain.KindReservationCompleted,
	domain.ReservationStatusCancelled: domain.KindReservationCancelled,
}

// DispatchCreated notifies the reservation owner and every admin about a new
// pending request.
func (d *Dispatcher) DispatchCreated(ctx context.Context, r *domain.Reservation) {
	recipients := []int32{r.UserID}
	admins, err := d.users.ListAdmins(ctx)
	if err != nil {
		logger.Error("Failed to resolve admin recipients", "error", err, "reservationID", r.ID)
	}
	for _, admin := range admins {
		if admin.ID != r.UserID {
			recipients = append(recipients, admin.ID)
		}
	}
	d.enqueue(ctx, r, domain.KindReservationRequested, "", recipients)
}

// DispatchTransition notifies the reservation owner about a status change.
func (d *Dispatcher) DispatchTransition(ctx context.Context, r *domain.Reservation, reason string) {
	kind, ok := kindByStatus[r.Status]
	if !ok {
		return
	}
	d.enqueue(ctx, r, kind, reason, []int32{r.UserID})
}

func (d *Dispatcher) enqueue(ctx context.Context, r *domain.Reservation, kind, reason string, recipients []int32) {
	payload := map[string]string{
		"item_id":     itoa(r.ItemID),
		"start_date":  r.StartDate.Format("2006-01-02 15:04"),
		"return_date": r.ReturnDate.Format("2006-01-02 15:04"),
		"status":      string(r.Status),
	}
	if reason != "" {
		payload["reason"] = reason
	}

	for _, recipientID := range recipients {
		ev := &domain.NotificationEvent{
			ID:            uuid.NewString(),
			RecipientID:   recipientID,
			ReservationID: r.ID,
			Kind:          kind,
			Payload:       payload,
		}
		if err := d.notes.Create(ctx, ev); err != nil {
			logger.Error("Failed to enqueue notification event",
				"error", err, "reservationID", r.ID, "recipientID", recipientID, "kind", kind)
		}
	}
}

func itoa(v int32) string {
	return strconv.Itoa(int(v))
}
