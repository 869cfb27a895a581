package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusApproved  ReservationStatus = "APPROVED"
	ReservationStatusRejected  ReservationStatus = "REJECTED"
	ReservationStatusActive    ReservationStatus = "ACTIVE"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation claims an item for the half-open window [StartDate, ReturnDate).
// Status is mutated only through the workflow engine; Version is the
// optimistic-concurrency counter bumped on every committed transition.
type Reservation struct {
	ID              int32             `json:"id"`
	ItemID          int32             `json:"item_id"`
	UserID          int32             `json:"user_id"`
	StartDate       time.Time         `json:"start_date"`
	ReturnDate      time.Time         `json:"return_date"`
	Status          ReservationStatus `json:"status"`
	Notes           string            `json:"notes"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	ApprovedBy      *int32            `json:"approved_by,omitempty"`
	Version         int32             `json:"version"`
	CreatedOn       time.Time         `json:"created_on"`
	UpdatedOn       time.Time         `json:"updated_on"`
}

// IsTerminal reports whether no further transitions are possible.
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationStatusRejected, ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	}
	return false
}

// Occupies reports whether a reservation in this status holds an interval in
// the occupancy index. Pending does not occupy; speculative requests for the
// same window may coexist until one is approved.
func (s ReservationStatus) Occupies() bool {
	return s == ReservationStatusApproved || s == ReservationStatusActive
}

type ActorRole string

const (
	RoleMember ActorRole = "MEMBER"
	RoleAdmin  ActorRole = "ADMIN"
	RoleSystem ActorRole = "SYSTEM"
)

// Actor identifies who is driving a transition. The system actor is used by
// the scheduler sweep.
type Actor struct {
	UserID int32     `json:"user_id"`
	Role   ActorRole `json:"role"`
}

var SystemActor = Actor{UserID: 0, Role: RoleSystem}

type transitionEdge struct {
	roles []ActorRole
	// ownerBound restricts RoleMember on this edge to the reservation owner.
	ownerBound bool
	// beforeStart restricts the edge to before the reservation's start date.
	beforeStart bool
}

// transitions is the closed edge table of the reservation lifecycle. Any edge
// not listed here is rejected, regardless of actor.
var transitions = map[ReservationStatus]map[ReservationStatus]transitionEdge{
	ReservationStatusPending: {
		ReservationStatusApproved:  {roles: []ActorRole{RoleAdmin}},
		ReservationStatusRejected:  {roles: []ActorRole{RoleAdmin}},
		ReservationStatusCancelled: {roles: []ActorRole{RoleMember, RoleAdmin}, ownerBound: true},
	},
	ReservationStatusApproved: {
		ReservationStatusActive:    {roles: []ActorRole{RoleSystem}},
		ReservationStatusCancelled: {roles: []ActorRole{RoleMember, RoleAdmin}, ownerBound: true, beforeStart: true},
	},
	ReservationStatusActive: {
		ReservationStatusCompleted: {roles: []ActorRole{RoleSystem}},
		ReservationStatusCancelled: {roles: []ActorRole{RoleAdmin}},
	},
}

// CanTransition reports whether the lifecycle graph has an edge from one
// status to another.
func CanTransition(from, to ReservationStatus) bool {
	_, ok := transitions[from][to]
	return ok
}

// AuthorizeTransition checks the edge-to-role map for the given actor. It
// assumes the edge exists; callers check CanTransition first.
func AuthorizeTransition(r *Reservation, to ReservationStatus, actor Actor) bool {
	edge, ok := transitions[r.Status][to]
	if !ok {
		return false
	}
	for _, role := range edge.roles {
		if role != actor.Role {
			continue
		}
		if actor.Role == RoleMember && edge.ownerBound && actor.UserID != r.UserID {
			return false
		}
		return true
	}
	return false
}

// TransitionAllowedAt checks the edge's time constraint, if any.
func TransitionAllowedAt(r *Reservation, to ReservationStatus, now time.Time) bool {
	edge, ok := transitions[r.Status][to]
	if !ok {
		return false
	}
	if edge.beforeStart && !now.Before(r.StartDate) {
		return false
	}
	return true
}

// Overlaps reports whether two half-open windows intersect. Adjacent windows
// (one's return equals the other's start) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
