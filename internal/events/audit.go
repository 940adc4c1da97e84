package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hostelhub/hostelhub/internal/pkg/logger"
)

// AuditSubscriber writes every domain event to the structured log, giving
// operators a trace of allotment and review activity without a separate
// audit store.
type AuditSubscriber struct {
	log zerolog.Logger
}

// NewAuditSubscriber creates the subscriber
func NewAuditSubscriber() *AuditSubscriber {
	return &AuditSubscriber{log: logger.WithComponent("audit")}
}

// Name implements Subscriber
func (s *AuditSubscriber) Name() string {
	return "audit-log"
}

// Handle implements Subscriber
func (s *AuditSubscriber) Handle(ctx context.Context, event Event) error {
	s.log.Info().
		Str("event", string(event.Type)).
		Time("occurredAt", event.OccurredAt).
		Interface("payload", event.Payload).
		Msg("Domain event")
	return nil
}
