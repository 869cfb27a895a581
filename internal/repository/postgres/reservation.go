package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

const reservationColumns = `id, item_id, user_id, start_date, return_date, status, notes,
	rejection_reason, approved_by, version, created_on, updated_on`

type reservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func scanReservation(row interface{ Scan(dest ...any) error }) (*domain.Reservation, error) {
	r := &domain.Reservation{}
	var rejection sql.NullString
	err := row.Scan(&r.ID, &r.ItemID, &r.UserID, &r.StartDate, &r.ReturnDate, &r.Status, &r.Notes,
		&rejection, &r.ApprovedBy, &r.Version, &r.CreatedOn, &r.UpdatedOn)
	if err != nil {
		return nil, err
	}
	r.RejectionReason = rejection.String
	return r, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (item_id, user_id, start_date, return_date, status, notes, version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, 1, $7, $8) RETURNING id, version, created_on, updated_on`
	now := time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		res.ItemID, res.UserID, res.StartDate, res.ReturnDate, res.Status, res.Notes, now, now).
		Scan(&res.ID, &res.Version, &res.CreatedOn, &res.UpdatedOn)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) List(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, int32, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	var args []any
	argIdx := 1

	if filter.ItemID != nil {
		query += fmt.Sprintf(" AND item_id = $%d", argIdx)
		args = append(args, *filter.ItemID)
		argIdx++
	}
	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	// Date-range filtering matches reservations whose window intersects the
	// requested range, half-open on both sides.
	if filter.From != nil {
		query += fmt.Sprintf(" AND return_date > $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND start_date < $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY created_on DESC"
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, filter.PageSize, (page-1)*filter.PageSize)
	}

	return r.queryMany(ctx, query, count, args...)
}

func (r *reservationRepository) ListOccupying(ctx context.Context) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE status IN ($1, $2) ORDER BY item_id, start_date`
	list, _, err := r.queryMany(ctx, query, 0, domain.ReservationStatusApproved, domain.ReservationStatusActive)
	return list, err
}

func (r *reservationRepository) ListNonTerminalByItem(ctx context.Context, itemID int32) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE item_id = $1 AND status IN ($2, $3, $4) ORDER BY start_date`
	list, _, err := r.queryMany(ctx, query, 0, itemID,
		domain.ReservationStatusPending, domain.ReservationStatusApproved, domain.ReservationStatusActive)
	return list, err
}

func (r *reservationRepository) ListDueForActivation(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE status = $1 AND start_date <= $2 ORDER BY start_date`
	list, _, err := r.queryMany(ctx, query, 0, domain.ReservationStatusApproved, now)
	return list, err
}

func (r *reservationRepository) ListDueForCompletion(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE status = $1 AND return_date <= $2 ORDER BY return_date`
	list, _, err := r.queryMany(ctx, query, 0, domain.ReservationStatusActive, now)
	return list, err
}

func (r *reservationRepository) UpdateStatusVersioned(ctx context.Context, res *domain.Reservation, expectedVersion int32) error {
	query := `UPDATE reservations
	          SET status = $1, rejection_reason = $2, approved_by = $3, version = version + 1, updated_on = $4
	          WHERE id = $5 AND version = $6`
	result, err := r.db.ExecContext(ctx, query,
		res.Status, res.RejectionReason, res.ApprovedBy, time.Now().UTC(), res.ID, expectedVersion)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrStaleWrite
	}
	res.Version = expectedVersion + 1
	return nil
}

func (r *reservationRepository) UpdateNotes(ctx context.Context, id int32, notes string) error {
	query := `UPDATE reservations SET notes = $1, updated_on = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, notes, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reservationRepository) queryMany(ctx context.Context, query string, count int32, args ...any) ([]domain.Reservation, int32, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *res)
	}
	return list, count, rows.Err()
}
