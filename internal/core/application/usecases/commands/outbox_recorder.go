package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/ports"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// recordEvents serializes drained domain events into outbox messages through
// the transaction-scoped repository. Called after the aggregate mutation and
// before commit, so the events become visible to the relay exactly when the
// owning transaction does.
func recordEvents(ctx context.Context, outboxRepo ports.OutboxRepository, events []order.DomainEvent) error {
	occurredAt := time.Now().UTC()

	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		message, err := outbox.NewMessage(event.EventID(), event.EventName(), payload, occurredAt)
		if err != nil {
			return err
		}

		if err = outboxRepo.Add(ctx, message); err != nil {
			return err
		}
	}

	return nil
}
