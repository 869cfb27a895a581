package service

import (
	"context"

	"equiptrack-backend/internal/domain"
	"equiptrack-backend/internal/repository"
)

type notificationService struct {
	notes repository.NotificationRepository
}

func NewNotificationService(notes repository.NotificationRepository) NotificationService {
	return &notificationService{notes: notes}
}

func (s *notificationService) ListForRecipient(ctx context.Context, recipientID, page, pageSize int32) ([]domain.NotificationEvent, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return s.notes.ListByRecipient(ctx, recipientID, pageSize, (page-1)*pageSize)
}

func (s *notificationService) MarkRead(ctx context.Context, recipientID int32, eventID string) error {
	return s.notes.MarkRead(ctx, eventID, recipientID)
}
