package order

import "dispatch/internal/core/domain/model/kernel"

// Event names used for outbox routing and payload serialization.
const (
	CreatedEventName   = "order.created"
	CompletedEventName = "order.completed"
)

// DomainEvent is the shared contract of the closed set of order events.
// Every event carries its own unique identity plus the name adapters use to
// route and serialize it. The set is intentionally small: CreatedEvent and
// CompletedEvent are the only variants, which keeps serialization
// exhaustively matchable.
type DomainEvent interface {
	EventID() kernel.UUID
	EventName() string
}

// CreatedEvent is raised when an order enters the system in Created status.
type CreatedEvent struct {
	ID      kernel.UUID `json:"event_id"`
	OrderID kernel.UUID `json:"order_id"`
}

// NewCreatedEvent builds a CreatedEvent with a fresh event identity.
func NewCreatedEvent(orderID kernel.UUID) CreatedEvent {
	return CreatedEvent{
		ID:      kernel.NewUUID(),
		OrderID: orderID,
	}
}

// EventID returns the unique identity of this event instance.
func (e CreatedEvent) EventID() kernel.UUID {
	return e.ID
}

// EventName returns the routing name of the event.
func (e CreatedEvent) EventName() string {
	return CreatedEventName
}

// CompletedEvent is raised when a courier delivers an order.
// It carries the courier that performed the delivery.
type CompletedEvent struct {
	ID        kernel.UUID `json:"event_id"`
	OrderID   kernel.UUID `json:"order_id"`
	CourierID kernel.UUID `json:"courier_id"`
}

// NewCompletedEvent builds a CompletedEvent with a fresh event identity.
func NewCompletedEvent(orderID, courierID kernel.UUID) CompletedEvent {
	return CompletedEvent{
		ID:        kernel.NewUUID(),
		OrderID:   orderID,
		CourierID: courierID,
	}
}

// EventID returns the unique identity of this event instance.
func (e CompletedEvent) EventID() kernel.UUID {
	return e.ID
}

// EventName returns the routing name of the event.
func (e CompletedEvent) EventName() string {
	return CompletedEventName
}
