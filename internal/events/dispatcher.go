package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hostelhub/hostelhub/internal/pkg/logger"
)

// Subscriber reacts to a dispatched event. A subscriber error is logged and
// never propagated to the caller or to other subscribers.
type Subscriber interface {
	Name() string
	Handle(ctx context.Context, event Event) error
}

// Dispatcher delivers events synchronously to its subscribers. Events are
// dispatched after the originating transaction commits, so a subscriber
// failure cannot roll back the state change it reacts to.
type Dispatcher struct {
	subscribers []Subscriber
	log         zerolog.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{log: logger.WithComponent("events")}
}

// Subscribe registers a subscriber. Not safe for concurrent use with
// Dispatch; register everything during bootstrap.
func (d *Dispatcher) Subscribe(s Subscriber) {
	d.subscribers = append(d.subscribers, s)
}

// Dispatch delivers the event to every subscriber in registration order.
// Each subscriber fails independently.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	for _, s := range d.subscribers {
		if err := s.Handle(ctx, event); err != nil {
			d.log.Error().
				Err(err).
				Str("subscriber", s.Name()).
				Str("event", string(event.Type)).
				Msg("Event subscriber failed")
		}
	}
}
