package jobs

import (
	"context"

	"equiptrack-backend/internal/broker"
	"equiptrack-backend/internal/logger"
)

// DeliverPendingNotifications drains undelivered notification events: each is
// emailed to its recipient and published to the broker, then marked
// delivered. Delivery is at-least-once — an event is only marked after both
// sinks succeed, so a crash mid-batch redelivers on the next tick and
// consumers dedupe on the event id. Failures never touch the transitions that
// produced the events.
func (jr *JobRunner) DeliverPendingNotifications() {
	jr.runWithRecovery("DeliverPendingNotifications", func() {
		ctx := context.Background()

		pending, err := jr.store.Notifications().ListUndelivered(ctx, jr.config.Scheduler.DeliveryBatchSize)
		if err != nil {
			logger.Error("Failed to list undelivered notifications", "error", err)
			return
		}

		delivered := 0
		for i := range pending {
			ev := pending[i]

			recipient, err := jr.store.Users().GetByID(ctx, ev.RecipientID)
			if err != nil {
				logger.Error("Failed to resolve notification recipient",
					"eventID", ev.ID, "recipientID", ev.RecipientID, "error", err)
				continue
			}

			if err := jr.email.SendReservationEvent(ctx, recipient.Email, recipient.Name, &ev); err != nil {
				logger.Error("Failed to deliver notification email",
					"eventID", ev.ID, "recipientID", ev.RecipientID, "error", err)
				continue
			}

			if jr.publisher != nil {
				msg := broker.ReservationEventMessage{
					EventID:       ev.ID,
					ReservationID: ev.ReservationID,
					RecipientID:   ev.RecipientID,
					Kind:          ev.Kind,
					Payload:       ev.Payload,
				}
				if err := jr.publisher.Publish(msg, ev.Kind); err != nil {
					logger.Error("Failed to publish notification to broker",
						"eventID", ev.ID, "kind", ev.Kind, "error", err)
					continue
				}
			}

			if err := jr.store.Notifications().MarkDelivered(ctx, ev.ID); err != nil {
				logger.Error("Failed to mark notification delivered", "eventID", ev.ID, "error", err)
				continue
			}
			delivered++
		}
		logger.Info("Delivered pending notifications", "pending", len(pending), "delivered", delivered)
	})
}
