package postgres

import (
	"context"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

// historyRepository is append-only by construction: it exposes no UPDATE or
// DELETE, and none exist for the status_history table.
type historyRepository struct {
	db DBTX
}

func NewHistoryRepository(db DBTX) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Append(ctx context.Context, rec *domain.StatusHistoryRecord) error {
	query := `INSERT INTO status_history (reservation_id, from_status, to_status, actor_id, reason, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		rec.ReservationID, rec.FromStatus, rec.ToStatus, rec.ActorID, rec.Reason, time.Now().UTC()).
		Scan(&rec.ID, &rec.CreatedOn)
}

func (r *historyRepository) ListByReservation(ctx context.Context, reservationID int32) ([]domain.StatusHistoryRecord, error) {
	query := `SELECT id, reservation_id, from_status, to_status, actor_id, reason, created_on
	          FROM status_history WHERE reservation_id = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.StatusHistoryRecord
	for rows.Next() {
		var rec domain.StatusHistoryRecord
		if err := rows.Scan(&rec.ID, &rec.ReservationID, &rec.FromStatus, &rec.ToStatus, &rec.ActorID, &rec.Reason, &rec.CreatedOn); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
