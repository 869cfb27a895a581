package service

import (
	"context"
	"fmt"

	"equiptrack-backend/internal/interval"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository"
)

// LoadOccupancyIndex rebuilds the interval index from storage at startup:
// every approved or active reservation claims its window. An overlap here
// means the persisted data already violates the no-double-booking invariant,
// which is a refuse-to-start condition.
func LoadOccupancyIndex(ctx context.Context, store repository.Store, index *interval.Index) error {
	occupying, err := store.Reservations().ListOccupying(ctx)
	if err != nil {
		return fmt.Errorf("list occupying reservations: %w", err)
	}

	entries := make(map[int32][]interval.Entry)
	for _, r := range occupying {
		entries[r.ItemID] = append(entries[r.ItemID], interval.Entry{
			ReservationID: r.ID,
			Start:         r.StartDate,
			End:           r.ReturnDate,
		})
	}
	if err := index.Load(entries); err != nil {
		return fmt.Errorf("load occupancy index: %w", err)
	}

	logger.Info("Occupancy index loaded", "reservations", len(occupying), "items", len(entries))
	return nil
}
