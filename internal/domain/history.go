package domain

import "time"

// StatusHistoryRecord is one immutable audit entry per committed transition.
// The history store has no update or delete; corrections are recorded as new
// compensating entries.
type StatusHistoryRecord struct {
	ID            int32             `json:"id"`
	ReservationID int32             `json:"reservation_id"`
	FromStatus    ReservationStatus `json:"from_status"`
	ToStatus      ReservationStatus `json:"to_status"`
	ActorID       int32             `json:"actor_id"`
	Reason        string            `json:"reason,omitempty"`
	CreatedOn     time.Time         `json:"created_on"`
}
