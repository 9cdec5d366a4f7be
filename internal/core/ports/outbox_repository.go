package ports

import (
	"context"

	"dispatch/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for outbox messages.
// Messages are inserted in the same transaction as the aggregate change that
// produced them; the relay job later reads pending rows and marks them
// processed after a successful publish. Rows are never deleted.
type OutboxRepository interface {
	// Add persists a new outbox message.
	Add(ctx context.Context, message *outbox.Message) error

	// Update persists changes to an existing message, in particular its
	// processed mark.
	Update(ctx context.Context, message *outbox.Message) error

	// GetNotPublished retrieves up to limit unprocessed messages,
	// oldest first.
	GetNotPublished(ctx context.Context, limit int) ([]*outbox.Message, error)
}
