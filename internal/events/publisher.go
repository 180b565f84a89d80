package events

import (
	"context"
	"log/slog"

	"finance-tracker/internal/config"
)

// Publisher delivers transaction events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event *TransactionEvent) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *TransactionEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

// NewPublisher connects to the configured broker behind a circuit breaker,
// or returns a NoopPublisher when AMQP_URL is empty.
func NewPublisher(cfg config.EventsConfig) (Publisher, error) {
	if cfg.AMQPURL == "" {
		slog.Info("event publishing disabled (AMQP_URL not set)")
		return NoopPublisher{}, nil
	}

	amqpPublisher, err := DialAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, err
	}
	return NewBreakerPublisher(amqpPublisher, DefaultCircuitBreakerConfig()), nil
}
