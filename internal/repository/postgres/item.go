package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type itemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `INSERT INTO items (name, location, notes, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on, updated_on`
	now := time.Now().UTC()
	if item.Status == "" {
		item.Status = domain.ItemStatusAvailable
	}
	return r.db.QueryRowContext(ctx, query, item.Name, item.Location, item.Notes, item.Status, now, now).
		Scan(&item.ID, &item.CreatedOn, &item.UpdatedOn)
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	item := &domain.Item{}
	query := `SELECT id, name, location, notes, status, created_on, updated_on FROM items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.Name, &item.Location, &item.Notes, &item.Status, &item.CreatedOn, &item.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT id, name, location, notes, status, created_on, updated_on FROM items ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Location, &item.Notes, &item.Status, &item.CreatedOn, &item.UpdatedOn); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepository) UpdateStatus(ctx context.Context, id int32, status domain.ItemStatus) error {
	query := `UPDATE items SET status = $1, updated_on = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
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
