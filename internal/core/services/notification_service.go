package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

// NotificationService manages admin announcements.
type NotificationService struct {
	notificationRepo ports.NotificationRepository
	broadcaster      ports.Broadcaster
}

var _ ports.NotificationService = (*NotificationService)(nil)

// NewNotificationService creates a new notification service.
func NewNotificationService(
	notificationRepo ports.NotificationRepository,
	broadcaster ports.Broadcaster,
) ports.NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		broadcaster:      broadcaster,
	}
}

// Create stores an announcement and pushes it to every dashboard.
func (s *NotificationService) Create(ctx context.Context, params ports.CreateNotificationParams) (*domain.Notification, error) {
	notification, err := domain.NewNotification(params.CreatedBy, params.Title, params.Body, params.Severity)
	if err != nil {
		return nil, err
	}

	notification, err = s.notificationRepo.Create(ctx, notification)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(domain.EventNewNotification, notification)

	return notification, nil
}

// Acknowledge records the first operator who confirmed the announcement and
// tells every other dashboard it has been handled.
func (s *NotificationService) Acknowledge(ctx context.Context, notificationID, actorID uuid.UUID) (*domain.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if err := notification.Acknowledge(actorID); err != nil {
		return nil, err
	}

	notification, err = s.notificationRepo.Update(ctx, notification)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(domain.EventNotificationAcknowledged, notification)

	return notification, nil
}

// ListRecent returns the newest announcements.
func (s *NotificationService) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.notificationRepo.ListRecent(ctx, limit, offset)
}
