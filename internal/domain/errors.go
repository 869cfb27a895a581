package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an item or reservation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStaleWrite is returned when the caller's version no longer matches
	// the stored reservation. The caller must refetch and retry.
	ErrStaleWrite = errors.New("stale write: reservation version changed")

	// ErrForbidden is returned when the actor's role does not permit the
	// requested edge.
	ErrForbidden = errors.New("actor not authorized for this transition")

	// ErrMaintenanceBlocked is returned when the item is under maintenance.
	ErrMaintenanceBlocked = errors.New("item is under maintenance")
)

// ValidationError reports malformed input, such as a start date at or after
// the return date.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Msg
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// BookingConflictError carries the ids of the occupying reservations that
// overlap the requested window, so callers can surface them.
type BookingConflictError struct {
	ConflictIDs []int32
}

func (e *BookingConflictError) Error() string {
	return fmt.Sprintf("booking conflict with reservations %v", e.ConflictIDs)
}

// InvalidTransitionError reports an edge not present in the lifecycle graph.
type InvalidTransitionError struct {
	From ReservationStatus
	To   ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// InvariantViolationError reports internal state corruption, such as an
// overlapping insert reaching the interval index despite the conflict check.
type InvariantViolationError struct {
	Msg string
}

func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.Msg
}
