// Package interval maintains the per-item occupancy index: the set of
// [start, end) windows belonging to reservations that currently occupy an
// item (approved or active). It is bounded to those reservations only, never
// the full reservation history, and answers overlap queries for the conflict
// detector.
package interval

import (
	"sort"
	"sync"
	"time"

	"equiptrack-backend/internal/domain"
)

// Entry is one occupying window for an item.
type Entry struct {
	ReservationID int32
	Start         time.Time
	End           time.Time
}

// Index holds occupancy intervals keyed by item, ordered by start time.
// Safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	byItem  map[int32][]Entry
	byResID map[int32]int32 // reservation id -> item id, for O(1) removal lookup
}

func NewIndex() *Index {
	return &Index{
		byItem:  make(map[int32][]Entry),
		byResID: make(map[int32]int32),
	}
}

// Insert adds an occupancy interval. It is defensive: the normal path is
// guarded by the conflict detector first, so an overlap here means the
// no-double-booking invariant was about to be broken.
func (ix *Index) Insert(itemID, reservationID int32, start, end time.Time) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if !start.Before(end) {
		return &domain.InvariantViolationError{Msg: "interval start must precede end"}
	}
	if _, exists := ix.byResID[reservationID]; exists {
		return &domain.InvariantViolationError{Msg: "reservation already indexed"}
	}
	entries := ix.byItem[itemID]
	if ids := overlapping(entries, start, end, reservationID); len(ids) > 0 {
		return &domain.InvariantViolationError{Msg: "interval overlaps existing occupancy"}
	}

	e := Entry{ReservationID: reservationID, Start: start, End: end}
	pos := sort.Search(len(entries), func(i int) bool {
		return entries[i].Start.After(start)
	})
	entries = append(entries, Entry{})
	copy(entries[pos+1:], entries[pos:])
	entries[pos] = e
	ix.byItem[itemID] = entries
	ix.byResID[reservationID] = itemID
	return nil
}

// Remove drops a reservation's interval, typically when it becomes terminal.
// Removing an unknown reservation is a no-op.
func (ix *Index) Remove(reservationID int32) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	itemID, ok := ix.byResID[reservationID]
	if !ok {
		return
	}
	delete(ix.byResID, reservationID)

	entries := ix.byItem[itemID]
	for i, e := range entries {
		if e.ReservationID == reservationID {
			ix.byItem[itemID] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(ix.byItem[itemID]) == 0 {
		delete(ix.byItem, itemID)
	}
}

// Query returns the ids of occupying reservations whose windows overlap
// [start, end), excluding excludeID (pass 0 to exclude nothing). Adjacent
// windows do not overlap.
func (ix *Index) Query(itemID int32, start, end time.Time, excludeID int32) []int32 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return overlapping(ix.byItem[itemID], start, end, excludeID)
}

// Contains reports whether a reservation currently holds an interval.
func (ix *Index) Contains(reservationID int32) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.byResID[reservationID]
	return ok
}

// Load replaces the index contents from the given entries, typically the
// occupying reservations read from storage at startup.
func (ix *Index) Load(entries map[int32][]Entry) error {
	ix.mu.Lock()
	byItem := make(map[int32][]Entry, len(entries))
	byResID := make(map[int32]int32)
	ix.byItem = byItem
	ix.byResID = byResID
	ix.mu.Unlock()

	for itemID, list := range entries {
		for _, e := range list {
			if err := ix.Insert(itemID, e.ReservationID, e.Start, e.End); err != nil {
				return err
			}
		}
	}
	return nil
}

// overlapping scans entries ordered by start. The set is bounded to the
// item's currently occupying reservations, so a linear pass is fine; the
// sort order lets it stop once starts pass the probe window.
func overlapping(entries []Entry, start, end time.Time, excludeID int32) []int32 {
	var ids []int32
	for _, e := range entries {
		if !e.Start.Before(end) {
			break
		}
		if e.ReservationID == excludeID {
			continue
		}
		if domain.Overlaps(e.Start, e.End, start, end) {
			ids = append(ids, e.ReservationID)
		}
	}
	return ids
}
