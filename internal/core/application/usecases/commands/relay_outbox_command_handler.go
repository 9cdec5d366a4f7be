package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"
)

// RelayOutboxCommandHandler runs one outbox relay pass: it loads a batch of
// pending messages, publishes each to the broker and marks it processed.
//
// Delivery is at-least-once. A message is marked processed only after the
// broker confirms the publish, so a crash in between redelivers it on a later
// run. A failed publish is logged and skipped; the message stays pending.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	producer   ports.EventsProducer
	batchSize  int
	logger     *slog.Logger
}

// NewRelayOutboxCommandHandler creates a handler for outbox relay runs.
func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	producer ports.EventsProducer,
	batchSize int,
	logger *slog.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		producer:   producer,
		batchSize:  batchSize,
		logger:     logger.With(slog.String("component", "relay_outbox")),
	}
}

// Handle processes one relay run over at most batchSize pending messages.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()

	messages, err := outboxRepo.GetNotPublished(ctx, h.batchSize)
	if err != nil {
		return err
	}

	for _, message := range messages {
		if err = h.producer.Publish(ctx, message); err != nil {
			h.logger.WarnContext(ctx, "publish failed, message stays pending",
				slog.String("message_id", message.ID().String()),
				slog.String("name", message.Name()),
				slog.Any("error", err))
			continue
		}

		message.MarkProcessed(time.Now().UTC())
		if err = outboxRepo.Update(ctx, message); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
