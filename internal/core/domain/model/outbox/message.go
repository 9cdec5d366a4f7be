package outbox

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrMessageIsNotConstructed is returned when using an improperly initialized Message.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Message is a persisted domain event awaiting delivery to the message broker.
//
// A message is written in the same transaction as the aggregate change that
// produced the event and published asynchronously by the relay job. Delivery
// is at-least-once: a message is marked processed only after a successful
// publish, so a crash in between causes redelivery. Messages are never
// deleted; processedAt records when delivery succeeded.
type Message struct {
	id         kernel.UUID
	name       string
	payload    []byte
	occurredAt time.Time

	// processedAt is nil until the message has been published.
	processedAt *time.Time

	guard guard.ConstructorGuard
}

// NewMessage creates an unprocessed Message from a serialized domain event.
// The id is the event's own id so redelivered messages stay deduplicatable
// downstream.
func NewMessage(id kernel.UUID, name string, payload []byte, occurredAt time.Time) (*Message, error) {
	message := &Message{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		message.setID(id),
		message.setName(name),
		message.setPayload(payload),
		message.setOccurredAt(occurredAt),
	); err != nil {
		return nil, err
	}

	return message, nil
}

// RestoreMessage rehydrates a Message from persistent state, including its
// processed mark.
func RestoreMessage(
	id kernel.UUID,
	name string,
	payload []byte,
	occurredAt time.Time,
	processedAt *time.Time,
) (*Message, error) {
	message := &Message{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		message.setID(id),
		message.setName(name),
		message.setPayload(payload),
		message.setOccurredAt(occurredAt),
	); err != nil {
		return nil, err
	}

	message.processedAt = processedAt
	return message, nil
}

// IsEqual compares messages by identity.
func (m *Message) IsEqual(other *Message) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// Validate reports whether the Message was properly constructed.
// The zero value fails.
func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

// ID returns the unique identifier of the message (the originating event id).
func (m *Message) ID() kernel.UUID {
	return m.id
}

// Name returns the event name used for broker routing.
func (m *Message) Name() string {
	return m.name
}

// Payload returns the serialized event body.
func (m *Message) Payload() []byte {
	return m.payload
}

// OccurredAt returns when the originating event was raised.
func (m *Message) OccurredAt() time.Time {
	return m.occurredAt
}

// ProcessedAt returns when the message was published, nil while pending.
func (m *Message) ProcessedAt() *time.Time {
	return m.processedAt
}

// IsProcessed reports whether the message has been published.
func (m *Message) IsProcessed() bool {
	return m.processedAt != nil
}

// MarkProcessed records a successful publish. Idempotent: the original
// processing time is kept on repeated calls.
func (m *Message) MarkProcessed(at time.Time) {
	if m.processedAt != nil {
		return
	}
	m.processedAt = &at
}

func (m *Message) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	m.id = id
	return nil
}

func (m *Message) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	m.name = name
	return nil
}

func (m *Message) setPayload(payload []byte) error {
	if len(payload) == 0 {
		return errs.NewValueIsRequiredError("payload")
	}

	m.payload = payload
	return nil
}

func (m *Message) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}

	m.occurredAt = occurredAt
	return nil
}
