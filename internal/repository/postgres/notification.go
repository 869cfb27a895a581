package postgres

import (
	"context"
	"encoding/json"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository"
)

type notificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, ev *domain.NotificationEvent) error {
	logger.EnterMethod("notificationRepository.Create", "recipientID", ev.RecipientID, "kind", ev.Kind)

	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "reason", "failed to marshal payload")
		return err
	}

	query := `INSERT INTO notification_events (id, recipient_id, reservation_id, kind, payload, delivered, is_read, created_on)
	          VALUES ($1, $2, $3, $4, $5, FALSE, FALSE, $6) RETURNING created_on`
	logger.DatabaseCall("INSERT", "notification_events", "eventID", ev.ID)

	err = r.db.QueryRowContext(ctx, query,
		ev.ID, ev.RecipientID, ev.ReservationID, ev.Kind, payload, time.Now().UTC()).Scan(&ev.CreatedOn)
	logger.DatabaseResult("INSERT", 1, err, "eventID", ev.ID)
	return err
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID int32, limit, offset int32) ([]domain.NotificationEvent, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM notification_events WHERE recipient_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, recipientID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, recipient_id, reservation_id, kind, payload, delivered, is_read, created_on
	          FROM notification_events WHERE recipient_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	events, err := r.queryMany(ctx, query, recipientID, limit, offset)
	return events, count, err
}

func (r *notificationRepository) ListUndelivered(ctx context.Context, limit int32) ([]domain.NotificationEvent, error) {
	query := `SELECT id, recipient_id, reservation_id, kind, payload, delivered, is_read, created_on
	          FROM notification_events WHERE delivered = FALSE ORDER BY created_on LIMIT $1`
	return r.queryMany(ctx, query, limit)
}

func (r *notificationRepository) MarkDelivered(ctx context.Context, id string) error {
	query := `UPDATE notification_events SET delivered = TRUE WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string, recipientID int32) error {
	query := `UPDATE notification_events SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	// Covers both a missing event and one belonging to another recipient;
	// neither is distinguished to the caller.
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.NotificationEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.NotificationEvent
	for rows.Next() {
		var ev domain.NotificationEvent
		var payload []byte
		if err := rows.Scan(&ev.ID, &ev.RecipientID, &ev.ReservationID, &ev.Kind, &payload, &ev.Delivered, &ev.IsRead, &ev.CreatedOn); err != nil {
			return nil, err
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &ev.Payload); err != nil {
				return nil, err
			}
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
