package service

import (
	"context"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/interval"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository"
)

const maintenanceReason = "item under maintenance"

type itemService struct {
	store      repository.Store
	index      *interval.Index
	dispatcher *Dispatcher
	locks      *ItemLocks
	now        func() time.Time
}

func NewItemService(store repository.Store, index *interval.Index, locks *ItemLocks, dispatcher *Dispatcher) ItemService {
	return &itemService{
		store:      store,
		index:      index,
		dispatcher: dispatcher,
		locks:      locks,
		now:        time.Now,
	}
}

func (s *itemService) Get(ctx context.Context, id int32) (*domain.Item, error) {
	return s.store.Items().GetByID(ctx, id)
}

func (s *itemService) List(ctx context.Context) ([]domain.Item, error) {
	return s.store.Items().List(ctx)
}

// SetMaintenance flips the maintenance override. Turning it on cascades:
// pending reservations are rejected, future-dated approved ones cancelled, an
// in-progress active one is left to run its course. Turning it off recomputes
// the derived item status; it does not restore anything the cascade ended.
func (s *itemService) SetMaintenance(ctx context.Context, itemID int32, on bool, actor domain.Actor) (*domain.Item, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	lock := s.locks.forItem(itemID)
	lock.Lock()
	defer lock.Unlock()

	item, err := s.store.Items().GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if on {
		return s.enterMaintenance(ctx, item, actor)
	}
	return s.clearMaintenance(ctx, item)
}

type cascaded struct {
	res    domain.Reservation
	reason string
}

func (s *itemService) enterMaintenance(ctx context.Context, item *domain.Item, actor domain.Actor) (*domain.Item, error) {
	if item.Status == domain.ItemStatusMaintenance {
		return item, nil
	}

	now := s.now()
	var ended []cascaded

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		ended = ended[:0]
		nonTerminal, err := tx.Reservations().ListNonTerminalByItem(ctx, item.ID)
		if err != nil {
			return err
		}

		for i := range nonTerminal {
			r := nonTerminal[i]
			from := r.Status
			switch {
			case r.Status == domain.ReservationStatusPending:
				r.Status = domain.ReservationStatusRejected
				r.RejectionReason = maintenanceReason
			case r.Status == domain.ReservationStatusApproved && r.StartDate.After(now):
				r.Status = domain.ReservationStatusCancelled
			default:
				// Active use is not interrupted; due-but-unactivated approved
				// reservations stay parked until maintenance clears.
				continue
			}

			if err := tx.Reservations().UpdateStatusVersioned(ctx, &r, r.Version); err != nil {
				return err
			}
			if err := tx.History().Append(ctx, &domain.StatusHistoryRecord{
				ReservationID: r.ID,
				FromStatus:    from,
				ToStatus:      r.Status,
				ActorID:       actor.UserID,
				Reason:        maintenanceReason,
			}); err != nil {
				return err
			}
			ended = append(ended, cascaded{res: r, reason: maintenanceReason})
		}

		return tx.Items().UpdateStatus(ctx, item.ID, domain.ItemStatusMaintenance)
	})
	if err != nil {
		return nil, err
	}

	for _, c := range ended {
		s.index.Remove(c.res.ID)
		s.dispatcher.DispatchTransition(ctx, &c.res, c.reason)
	}
	item.Status = domain.ItemStatusMaintenance

	logger.Info("Item entered maintenance",
		"itemID", item.ID, "actorID", actor.UserID, "cascaded", len(ended))
	return item, nil
}

func (s *itemService) clearMaintenance(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item.Status != domain.ItemStatusMaintenance {
		return item, nil
	}

	var derived domain.ItemStatus
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		nonTerminal, err := tx.Reservations().ListNonTerminalByItem(ctx, item.ID)
		if err != nil {
			return err
		}
		statuses := make([]domain.ReservationStatus, 0, len(nonTerminal))
		for _, r := range nonTerminal {
			statuses = append(statuses, r.Status)
		}
		derived = domain.DerivedItemStatus(statuses)
		return tx.Items().UpdateStatus(ctx, item.ID, derived)
	})
	if err != nil {
		return nil, err
	}

	item.Status = derived
	logger.Info("Item maintenance cleared", "itemID", item.ID, "status", derived)
	return item, nil
}
