package services

import (
	"context"
	"strings"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/events"
)

// NotificationService handles announcements and per-user notifications.
// Event-driven notification rows are written by the dispatcher subscriber;
// this service covers the explicit warden broadcast path and reads.
type NotificationService struct {
	notifications *repositories.NotificationRepository
	dispatcher    *events.Dispatcher
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(repos *repositories.Repositories, dispatcher *events.Dispatcher) *NotificationService {
	return &NotificationService{
		notifications: repos.NotificationRepository,
		dispatcher:    dispatcher,
	}
}

// PublishAnnouncement creates a broadcast notification. A nil audience
// reaches every role.
func (s *NotificationService) PublishAnnouncement(ctx context.Context, req *dto.CreateAnnouncementRequest) (*models.Notification, error) {
	announcement := &models.Notification{
		Title:   strings.TrimSpace(req.Title),
		Message: strings.TrimSpace(req.Message),
	}
	if req.Audience != nil {
		audience := models.RoleType(*req.Audience)
		announcement.Audience = &audience
	}

	if err := s.notifications.Create(ctx, announcement); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, events.New(events.AnnouncementPublished, map[string]any{
			"notificationId": announcement.ID,
			"title":          announcement.Title,
		}))
	}

	return announcement, nil
}

// ListForUser retrieves the notifications visible to a user
func (s *NotificationService) ListForUser(ctx context.Context, userID int64, role models.RoleType) ([]*models.Notification, error) {
	return s.notifications.ListForUser(ctx, userID, role)
}

// MarkRead flags a notification addressed to the user as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notifications.MarkRead(ctx, id, userID)
}
