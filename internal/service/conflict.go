package service

import (
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/interval"
)

// ConflictDetector answers whether a window can occupy an item. It is a pure
// query over the interval index and mutates nothing, so a failed check is
// safely retryable; committing is the workflow engine's job.
type ConflictDetector struct {
	index *interval.Index
}

func NewConflictDetector(index *interval.Index) *ConflictDetector {
	return &ConflictDetector{index: index}
}

// Check returns nil when [start, end) is free on the item, or a
// BookingConflictError carrying the occupying reservation ids. excludeID
// removes the caller's own reservation from consideration (pass 0 for none).
func (d *ConflictDetector) Check(itemID int32, start, end time.Time, excludeID int32) error {
	ids := d.index.Query(itemID, start, end, excludeID)
	if len(ids) == 0 {
		return nil
	}
	return &domain.BookingConflictError{ConflictIDs: ids}
}
