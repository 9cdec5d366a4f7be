// Package kafka publishes outbox messages to a Kafka topic with
// delivery confirmation.
package kafka

import (
	"context"
	"strconv"

	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/pkg/errs"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

const flushTimeoutMs = 5000

// Producer publishes outbox messages to a single Kafka topic.
// Publish blocks until the broker confirms delivery, so the relay job can
// mark the message processed afterwards.
type Producer struct {
	producer *kafka.Producer
	topic    string
}

// NewProducer creates a Kafka producer for the given brokers and topic.
func NewProducer(brokers string, topic string) (*Producer, error) {
	if brokers == "" {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
	})
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer: producer,
		topic:    topic,
	}, nil
}

// Publish sends the message to the topic keyed by the originating event id,
// so redeliveries of the same event land in the same partition. It returns
// after the broker acknowledges the write or the context is canceled.
func (p *Producer) Publish(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	deliveries := make(chan kafka.Event, 1)

	err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(message.ID().String()),
		Value:          message.Payload(),
		Headers: []kafka.Header{
			{Key: "id", Value: []byte(message.ID().String())},
			{Key: "name", Value: []byte(message.Name())},
			{Key: "occurredAt", Value: []byte(strconv.FormatInt(message.OccurredAt().UnixMilli(), 10))},
		},
	}, deliveries)
	if err != nil {
		return err
	}

	select {
	case event := <-deliveries:
		if m, ok := event.(*kafka.Message); ok {
			return m.TopicPartition.Error
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes buffered messages and releases broker resources.
func (p *Producer) Close() error {
	p.producer.Flush(flushTimeoutMs)
	p.producer.Close()
	return nil
}
