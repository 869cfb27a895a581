package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"equiptrack-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository works
// unchanged inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB // nil when the store is bound to a transaction

	items         repository.ItemRepository
	reservations  repository.ReservationRepository
	history       repository.HistoryRepository
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, q DBTX) *Store {
	return &Store{
		db:            db,
		items:         NewItemRepository(q),
		reservations:  NewReservationRepository(q),
		history:       NewHistoryRepository(q),
		notifications: NewNotificationRepository(q),
		users:         NewUserRepository(q),
	}
}

func (s *Store) Items() repository.ItemRepository                 { return s.items }
func (s *Store) Reservations() repository.ReservationRepository   { return s.reservations }
func (s *Store) History() repository.HistoryRepository            { return s.history }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }
func (s *Store) Users() repository.UserRepository                 { return s.users }

// WithinTx runs fn against a Store bound to a single serializable
// transaction. A store that is already transaction-bound reuses its
// transaction, so nested calls compose.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(newStore(nil, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}
