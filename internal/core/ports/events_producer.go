package ports

import (
	"context"

	"dispatch/internal/core/domain/model/outbox"
)

// EventsProducer publishes outbox messages to the message broker.
// Publish returns only after the broker has confirmed delivery, so the relay
// job can safely mark the message processed afterwards. A failed publish
// leaves the message pending and it is retried on the next relay tick.
type EventsProducer interface {
	Publish(ctx context.Context, message *outbox.Message) error

	// Close releases broker resources. Safe to call once during shutdown.
	Close() error
}
