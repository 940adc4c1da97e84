package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhub/hostelhub/internal/app/models"
)

type stubSubscriber struct {
	name     string
	err      error
	received []Event
}

func (s *stubSubscriber) Name() string { return s.name }

func (s *stubSubscriber) Handle(ctx context.Context, event Event) error {
	s.received = append(s.received, event)
	return s.err
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	first := &stubSubscriber{name: "first"}
	second := &stubSubscriber{name: "second"}

	d := NewDispatcher()
	d.Subscribe(first)
	d.Subscribe(second)

	event := New(AllotmentCreated, map[string]any{"roomId": int64(12)})
	d.Dispatch(context.Background(), event)

	require.Len(t, first.received, 1)
	require.Len(t, second.received, 1)
	assert.Equal(t, AllotmentCreated, first.received[0].Type)
	assert.Equal(t, int64(12), second.received[0].Payload["roomId"])
	assert.False(t, event.OccurredAt.IsZero())
}

func TestDispatcherIsolatesFailures(t *testing.T) {
	failing := &stubSubscriber{name: "failing", err: errors.New("broker down")}
	healthy := &stubSubscriber{name: "healthy"}

	d := NewDispatcher()
	d.Subscribe(failing)
	d.Subscribe(healthy)

	d.Dispatch(context.Background(), New(MaintenanceResolved, nil))

	assert.Len(t, failing.received, 1)
	assert.Len(t, healthy.received, 1, "a failing subscriber must not block the rest")
}

type capturingWriter struct {
	created []*models.Notification
	err     error
}

func (w *capturingWriter) Create(ctx context.Context, n *models.Notification) error {
	w.created = append(w.created, n)
	return w.err
}

func TestNotificationSubscriber(t *testing.T) {
	ctx := context.Background()

	t.Run("writes a row for addressed events", func(t *testing.T) {
		writer := &capturingWriter{}
		sub := NewNotificationSubscriber(writer)

		err := sub.Handle(ctx, New(AllotmentCreated, map[string]any{
			"userId": int64(10),
			"roomNo": "A-102",
		}))
		require.NoError(t, err)

		require.Len(t, writer.created, 1)
		n := writer.created[0]
		require.NotNil(t, n.UserID)
		assert.Equal(t, int64(10), *n.UserID)
		assert.Equal(t, "Room allotted", n.Title)
		assert.Contains(t, n.Message, "A-102")
	})

	t.Run("tolerates JSON decoded user ids", func(t *testing.T) {
		writer := &capturingWriter{}
		sub := NewNotificationSubscriber(writer)

		err := sub.Handle(ctx, New(ApplicationApproved, map[string]any{
			"userId": float64(7),
		}))
		require.NoError(t, err)

		require.Len(t, writer.created, 1)
		assert.Equal(t, int64(7), *writer.created[0].UserID)
	})

	t.Run("skips events without a user", func(t *testing.T) {
		writer := &capturingWriter{}
		sub := NewNotificationSubscriber(writer)

		err := sub.Handle(ctx, New(RoomVacatedBulk, map[string]any{
			"roomId": int64(12),
			"count":  int64(3),
		}))
		require.NoError(t, err)
		assert.Empty(t, writer.created)
	})

	t.Run("skips event types it does not render", func(t *testing.T) {
		writer := &capturingWriter{}
		sub := NewNotificationSubscriber(writer)

		err := sub.Handle(ctx, New(HostelDeleted, map[string]any{
			"userId": int64(10),
		}))
		require.NoError(t, err)
		assert.Empty(t, writer.created)
	})
}
