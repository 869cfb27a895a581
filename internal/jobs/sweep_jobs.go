package jobs

import (
	"context"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/logger"
)

// Each transition gets its own deadline so one hung item cannot stall the
// rest of the sweep tick.
const sweepTransitionTimeout = 30 * time.Second

// ActivateDueReservations advances approved reservations whose start date has
// arrived to Active, through the regular transition path with the system
// actor. Per-reservation failures (a concurrent cancellation losing the
// version race, an item parked in maintenance) are logged and skipped; the
// reservation is re-evaluated on the next tick, never retried within one.
func (jr *JobRunner) ActivateDueReservations() {
	jr.runWithRecovery("ActivateDueReservations", func() {
		ctx := context.Background()

		due, err := jr.store.Reservations().ListDueForActivation(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to list reservations due for activation", "error", err)
			return
		}

		activated := 0
		for _, r := range due {
			tctx, cancel := context.WithTimeout(ctx, sweepTransitionTimeout)
			_, err := jr.reservations.Transition(tctx, r.ID, domain.ReservationStatusActive, domain.SystemActor, r.Version, "")
			cancel()
			if err != nil {
				logger.Warn("Skipping activation, will re-check next tick",
					"reservationID", r.ID, "itemID", r.ItemID, "error", err)
				continue
			}
			activated++
		}
		logger.Info("Activated due reservations", "due", len(due), "activated", activated)
	})
}

// CompleteDueReservations completes active reservations whose return date has
// passed. Same skip-and-retry-next-tick policy as activation.
func (jr *JobRunner) CompleteDueReservations() {
	jr.runWithRecovery("CompleteDueReservations", func() {
		ctx := context.Background()

		due, err := jr.store.Reservations().ListDueForCompletion(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to list reservations due for completion", "error", err)
			return
		}

		completed := 0
		for _, r := range due {
			tctx, cancel := context.WithTimeout(ctx, sweepTransitionTimeout)
			_, err := jr.reservations.Transition(tctx, r.ID, domain.ReservationStatusCompleted, domain.SystemActor, r.Version, "")
			cancel()
			if err != nil {
				logger.Warn("Skipping completion, will re-check next tick",
					"reservationID", r.ID, "itemID", r.ItemID, "error", err)
				continue
			}
			completed++
		}
		logger.Info("Completed due reservations", "due", len(due), "completed", completed)
	})
}
