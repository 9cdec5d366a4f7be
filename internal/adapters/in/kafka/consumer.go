// Package kafka turns basket confirmations from the basket service into
// orders, making Kafka an order source alongside the HTTP API.
package kafka

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const pollTimeout = time.Second

// BasketConfirmedEvent is the integration event published by the basket
// service when a customer confirms a basket. The basket id becomes the
// order id, so redelivered confirmations create the same order.
type BasketConfirmedEvent struct {
	EventID  string        `json:"eventId"`
	BasketID string        `json:"basketId"`
	Address  BasketAddress `json:"address"`
	Volume   int           `json:"volume"`
}

// BasketAddress carries the delivery street of a confirmed basket.
type BasketAddress struct {
	Street string `json:"street"`
}

// createOrderHandler is the slice of the application layer the consumer drives.
type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

var _ createOrderHandler = (*commands.CreateOrderCommandHandler)(nil)

// BasketEventsConsumer reads basket confirmations from a Kafka topic and
// creates an order for each one.
type BasketEventsConsumer struct {
	consumer *kafka.Consumer
	handler  createOrderHandler
	logger   *slog.Logger
}

// NewBasketEventsConsumer creates a consumer subscribed to the basket
// confirmations topic.
func NewBasketEventsConsumer(
	brokers string,
	group string,
	topic string,
	handler createOrderHandler,
	logger *slog.Logger,
) (*BasketEventsConsumer, error) {
	if brokers == "" {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if group == "" {
		return nil, errs.NewValueIsRequiredError("group")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if handler == nil {
		return nil, errs.NewValueIsRequiredError("handler")
	}

	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  brokers,
		"group.id":           group,
		"session.timeout.ms": 6000,
		"enable.auto.commit": true,
		"auto.offset.reset":  "earliest",
	})
	if err != nil {
		return nil, err
	}

	if err = consumer.Subscribe(topic, nil); err != nil {
		_ = consumer.Close()
		return nil, err
	}

	return &BasketEventsConsumer{
		consumer: consumer,
		handler:  handler,
		logger:   logger.With(slog.String("component", "basket_events_consumer")),
	}, nil
}

// Consume reads basket confirmations until the context is canceled.
// Malformed events and failed commands are logged and skipped, so one bad
// message never stalls the stream.
func (c *BasketEventsConsumer) Consume(ctx context.Context) {
	c.logger.InfoContext(ctx, "consuming basket confirmations")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := c.consumer.ReadMessage(pollTimeout)
		if err != nil {
			if kafkaErr, ok := err.(kafka.Error); ok && kafkaErr.Code() == kafka.ErrTimedOut {
				continue
			}
			c.logger.WarnContext(ctx, "could not consume message", slog.Any("error", err))
			continue
		}

		c.handleMessage(ctx, msg.Value)
	}
}

// Close releases broker resources. Call after Consume has returned.
func (c *BasketEventsConsumer) Close() error {
	return c.consumer.Close()
}

func (c *BasketEventsConsumer) handleMessage(ctx context.Context, payload []byte) {
	var event BasketConfirmedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.logger.WarnContext(ctx, "failed to decode basket confirmation", slog.Any("error", err))
		return
	}

	orderID, err := kernel.UUIDFromString(event.BasketID)
	if err != nil {
		c.logger.WarnContext(ctx, "basket id is not a uuid",
			slog.String("basket_id", event.BasketID), slog.Any("error", err))
		return
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, event.Address.Street, event.Volume)
	if err != nil {
		c.logger.WarnContext(ctx, "basket confirmation rejected",
			slog.String("basket_id", event.BasketID), slog.Any("error", err))
		return
	}

	if err = c.handler.Handle(ctx, cmd); err != nil {
		c.logger.ErrorContext(ctx, "failed to create order from basket",
			slog.String("order_id", orderID.String()), slog.Any("error", err))
		return
	}

	c.logger.InfoContext(ctx, "order created from basket",
		slog.String("order_id", orderID.String()))
}
