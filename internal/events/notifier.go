package events

import (
	"context"
	"fmt"

	"github.com/hostelhub/hostelhub/internal/app/models"
)

// notificationWriter is the slice of the notification repository the
// subscriber needs.
type notificationWriter interface {
	Create(ctx context.Context, n *models.Notification) error
}

// NotificationSubscriber turns domain events into in-app notifications.
// Events whose payload carries a "userId" produce a row addressed to that
// user; events without one are ignored.
type NotificationSubscriber struct {
	notifications notificationWriter
}

// NewNotificationSubscriber creates the subscriber
func NewNotificationSubscriber(notifications notificationWriter) *NotificationSubscriber {
	return &NotificationSubscriber{notifications: notifications}
}

// Name implements Subscriber
func (s *NotificationSubscriber) Name() string {
	return "notification-writer"
}

// Handle implements Subscriber
func (s *NotificationSubscriber) Handle(ctx context.Context, event Event) error {
	userID, ok := payloadInt64(event.Payload, "userId")
	if !ok {
		return nil
	}

	title, message := s.render(event)
	if title == "" {
		return nil
	}

	return s.notifications.Create(ctx, &models.Notification{
		UserID:  &userID,
		Title:   title,
		Message: message,
	})
}

func (s *NotificationSubscriber) render(event Event) (title, message string) {
	roomNo, _ := event.Payload["roomNo"].(string)

	switch event.Type {
	case AllotmentCreated:
		return "Room allotted", fmt.Sprintf("You have been allotted room %s.", roomNo)
	case AllotmentVacated:
		return "Room vacated", fmt.Sprintf("Your allotment for room %s has been vacated.", roomNo)
	case ApplicationApproved:
		return "Application approved", "Your room allotment application has been approved."
	case ApplicationRejected:
		return "Application rejected", "Your room allotment application has been rejected."
	case ApplicationAllocated:
		return "Room allocated", fmt.Sprintf("Your application has been allocated room %s.", roomNo)
	case MaintenanceResolved:
		return "Maintenance resolved", fmt.Sprintf("Your maintenance request for room %s has been resolved.", roomNo)
	default:
		return "", ""
	}
}

// payloadInt64 reads an integer payload field regardless of whether the
// payload was built in-process (int64) or decoded from JSON (float64).
func payloadInt64(payload map[string]any, key string) (int64, bool) {
	switch v := payload[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
