package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/hostelhub/hostelhub/internal/pkg/logger"
)

// AMQPPublisher mirrors domain events onto a RabbitMQ queue for external
// consumers. Publishing is best-effort: the broker being down never blocks
// a request, a failed publish is only logged.
type AMQPPublisher struct {
	url   string
	queue string
	log   zerolog.Logger
}

// NewAMQPPublisher creates a publisher targeting the given broker URL and
// queue. Returns nil when the URL is empty, which disables AMQP mirroring.
func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	if url == "" {
		return nil
	}
	if queue == "" {
		queue = "hostelhub.events"
	}
	return &AMQPPublisher{url: url, queue: queue, log: logger.WithComponent("amqp")}
}

// Name implements Subscriber
func (p *AMQPPublisher) Name() string {
	return "amqp-publisher"
}

// Handle publishes the event to the configured queue as a persistent JSON
// message. A connection is dialed per event; event volume here is low and a
// dead broker must not hold resources between requests.
func (p *AMQPPublisher) Handle(ctx context.Context, event Event) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare. Durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
