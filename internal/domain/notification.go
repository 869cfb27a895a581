package domain

import "time"

// Notification kinds, doubling as broker routing keys.
const (
	KindReservationRequested = "reservation.requested"
	KindReservationApproved  = "reservation.approved"
	KindReservationRejected  = "reservation.rejected"
	KindReservationActivated = "reservation.activated"
	KindReservationCompleted = "reservation.completed"
	KindReservationCancelled = "reservation.cancelled"
)

// NotificationEvent is one queued notification for one recipient. The uuid ID
// lets consumers deduplicate under at-least-once delivery.
type NotificationEvent struct {
	ID            string            `json:"id"`
	RecipientID   int32             `json:"recipient_id"`
	ReservationID int32             `json:"reservation_id"`
	Kind          string            `json:"kind"`
	Payload       map[string]string `json:"payload"`
	Delivered     bool              `json:"delivered"`
	IsRead        bool              `json:"is_read"`
	CreatedOn     time.Time         `json:"created_on"`
}
