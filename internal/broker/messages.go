package broker

// ReservationEventMessage is the wire form of a notification event published
// to the topic exchange. EventID is the dedupe key under at-least-once
// delivery.
type ReservationEventMessage struct {
	EventID       string            `json:"event_id"`
	ReservationID int32             `json:"reservation_id"`
	RecipientID   int32             `json:"recipient_id"`
	Kind          string            `json:"kind"`
	Payload       map[string]string `json:"payload,omitempty"`
}
