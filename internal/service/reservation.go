package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/interval"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository"
)

// ItemLocks serializes in-process work per item. Transitions on different
// items proceed in parallel; the versioned UPDATE in the reservation
// repository is the cross-process guard. One instance is shared by every
// service touching reservations, so the maintenance cascade and same-item
// transitions never interleave within a process.
type ItemLocks struct {
	mu    sync.Mutex
	locks map[int32]*sync.Mutex
}

func NewItemLocks() *ItemLocks {
	return &ItemLocks{locks: make(map[int32]*sync.Mutex)}
}

func (l *ItemLocks) forItem(itemID int32) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[itemID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[itemID] = m
	}
	return m
}

type reservationService struct {
	store      repository.Store
	index      *interval.Index
	detector   *ConflictDetector
	dispatcher *Dispatcher
	locks      *ItemLocks
	now        func() time.Time
}

func NewReservationService(store repository.Store, index *interval.Index, locks *ItemLocks, dispatcher *Dispatcher) ReservationService {
	return &reservationService{
		store:      store,
		index:      index,
		detector:   NewConflictDetector(index),
		dispatcher: dispatcher,
		locks:      locks,
		now:        time.Now,
	}
}

// Create opens a reservation in Pending. Pending requests are speculative:
// they are not checked against other pending windows, only against an item
// that exists and is not under maintenance. Conflicts are enforced at
// approval time, when the reservation would start occupying the item.
func (s *reservationService) Create(ctx context.Context, itemID, userID int32, start, end time.Time, notes string) (*domain.Reservation, error) {
	if start.IsZero() || end.IsZero() {
		return nil, domain.NewValidationError("start and return dates are required")
	}
	if !start.Before(end) {
		return nil, domain.NewValidationError("start date %s must be before return date %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	item, err := s.store.Items().GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status == domain.ItemStatusMaintenance {
		return nil, domain.ErrMaintenanceBlocked
	}

	res := &domain.Reservation{
		ItemID:     itemID,
		UserID:     userID,
		StartDate:  start,
		ReturnDate: end,
		Status:     domain.ReservationStatusPending,
		Notes:      notes,
	}

	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Reservations().Create(ctx, res); err != nil {
			return err
		}
		return tx.History().Append(ctx, &domain.StatusHistoryRecord{
			ReservationID: res.ID,
			FromStatus:    "",
			ToStatus:      domain.ReservationStatusPending,
			ActorID:       userID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.DispatchCreated(ctx, res)
	logger.Info("Reservation created", "reservationID", res.ID, "itemID", itemID, "userID", userID)
	return res, nil
}

// Transition advances a reservation along one edge of the lifecycle graph.
// The caller presents the version it last read; if the stored version has
// moved on, ErrStaleWrite is returned with no effect and the caller must
// refetch. Conflict check, status write, version bump, item status
// derivation and history append commit atomically.
func (s *reservationService) Transition(ctx context.Context, reservationID int32, target domain.ReservationStatus, actor domain.Actor, version int32, reason string) (*domain.Reservation, error) {
	probe, err := s.store.Reservations().GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.forItem(probe.ItemID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock: another transition may have committed between
	// the probe and lock acquisition.
	res, err := s.store.Reservations().GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if res.Version != version {
		return nil, domain.ErrStaleWrite
	}
	if !domain.CanTransition(res.Status, target) {
		return nil, &domain.InvalidTransitionError{From: res.Status, To: target}
	}
	if !domain.AuthorizeTransition(res, target, actor) {
		return nil, domain.ErrForbidden
	}
	if !domain.TransitionAllowedAt(res, target, s.now()) {
		return nil, &domain.InvalidTransitionError{From: res.Status, To: target}
	}

	item, err := s.store.Items().GetByID(ctx, res.ItemID)
	if err != nil {
		return nil, err
	}
	if target.Occupies() && item.Status == domain.ItemStatusMaintenance {
		return nil, domain.ErrMaintenanceBlocked
	}

	// Entering Approved claims the interval; Approved and Active are one
	// logical occupancy, so activation reuses the interval inserted at
	// approval time.
	enteringOccupancy := target == domain.ReservationStatusApproved
	if enteringOccupancy {
		if err := s.checkConflicts(ctx, res); err != nil {
			return nil, err
		}
		if err := s.index.Insert(res.ItemID, res.ID, res.StartDate, res.ReturnDate); err != nil {
			return nil, err
		}
	}

	from := res.Status
	res.Status = target
	switch target {
	case domain.ReservationStatusRejected:
		res.RejectionReason = reason
	case domain.ReservationStatusApproved:
		approver := actor.UserID
		res.ApprovedBy = &approver
	}

	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Reservations().UpdateStatusVersioned(ctx, res, version); err != nil {
			return err
		}
		if err := tx.History().Append(ctx, &domain.StatusHistoryRecord{
			ReservationID: res.ID,
			FromStatus:    from,
			ToStatus:      target,
			ActorID:       actor.UserID,
			Reason:        reason,
		}); err != nil {
			return err
		}
		return s.syncItemStatus(ctx, tx, item)
	})
	if err != nil {
		// Roll back the speculative index insert; the occupancy never
		// committed.
		if enteringOccupancy {
			s.index.Remove(res.ID)
		}
		return nil, err
	}

	if target.IsTerminal() {
		s.index.Remove(res.ID)
	}

	s.dispatcher.DispatchTransition(ctx, res, reason)
	logger.Info("Reservation transitioned",
		"reservationID", res.ID, "from", from, "to", target, "actorID", actor.UserID, "actorRole", actor.Role)
	return res, nil
}

// checkConflicts verifies the window is free before an approval claims it.
// Index entries can outlive their reservation when another process (a sweep
// runner, another replica) commits the terminal transition against the shared
// database, so a conflict hit is re-validated against storage: entries whose
// reservation is terminal or gone are evicted and the check runs once more.
func (s *reservationService) checkConflicts(ctx context.Context, res *domain.Reservation) error {
	err := s.detector.Check(res.ItemID, res.StartDate, res.ReturnDate, res.ID)
	var conflict *domain.BookingConflictError
	if !errors.As(err, &conflict) {
		return err
	}

	evicted := false
	for _, id := range conflict.ConflictIDs {
		other, err := s.store.Reservations().GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			s.index.Remove(id)
			evicted = true
			continue
		}
		if err != nil {
			return err
		}
		if other.Status.IsTerminal() {
			logger.Info("Evicting stale occupancy entry",
				"reservationID", id, "status", other.Status, "itemID", res.ItemID)
			s.index.Remove(id)
			evicted = true
		}
	}
	if !evicted {
		return conflict
	}
	return s.detector.Check(res.ItemID, res.StartDate, res.ReturnDate, res.ID)
}

// syncItemStatus rewrites the cached item status from the item's non-terminal
// reservations, inside the same transaction as the reservation update. The
// Maintenance override is left alone; clearing it goes through the
// maintenance gate.
func (s *reservationService) syncItemStatus(ctx context.Context, tx repository.Store, item *domain.Item) error {
	if item.Status == domain.ItemStatusMaintenance {
		return nil
	}
	nonTerminal, err := tx.Reservations().ListNonTerminalByItem(ctx, item.ID)
	if err != nil {
		return err
	}
	statuses := make([]domain.ReservationStatus, 0, len(nonTerminal))
	for _, r := range nonTerminal {
		statuses = append(statuses, r.Status)
	}
	derived := domain.DerivedItemStatus(statuses)
	if derived == item.Status {
		return nil
	}
	return tx.Items().UpdateStatus(ctx, item.ID, derived)
}

func (s *reservationService) Get(ctx context.Context, id int32) (*domain.Reservation, error) {
	return s.store.Reservations().GetByID(ctx, id)
}

func (s *reservationService) List(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, int32, error) {
	return s.store.Reservations().List(ctx, filter)
}

func (s *reservationService) History(ctx context.Context, reservationID int32) ([]domain.StatusHistoryRecord, error) {
	return s.store.History().ListByReservation(ctx, reservationID)
}

// UpdateNotes edits the free-text notes. Terminal reservations stay otherwise
// immutable; retrospective notes are the one allowed edit.
func (s *reservationService) UpdateNotes(ctx context.Context, id int32, actor domain.Actor, notes string) error {
	res, err := s.store.Reservations().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin && actor.UserID != res.UserID {
		return domain.ErrForbidden
	}
	return s.store.Reservations().UpdateNotes(ctx, id, notes)
}
