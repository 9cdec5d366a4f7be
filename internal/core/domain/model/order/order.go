package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrCourierAlreadyAssigned is returned when assigning an order that already
	// has a courier.
	ErrCourierAlreadyAssigned = errors.New("order already has a courier assigned")

	// ErrCourierIsNotAssigned is returned when completing an order that has no
	// courier.
	ErrCourierIsNotAssigned = errors.New("order has no courier assigned")
)

// Order represents a delivery order. It is the aggregate root managing the
// order lifecycle from creation through assignment to completion.
//
// Invariants:
//   - id and destination are immutable after construction
//   - volume is positive
//   - courierID is set if and only if status is Assigned or Completed
//   - status only ever moves forward (see Status)
//
// Lifecycle changes raise domain events which accumulate on the aggregate
// until the owning transaction drains them with TakeEvents. Rehydration via
// RestoreOrder never raises events.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// courierID is the assigned courier's ID (nil if unassigned)
	courierID *kernel.UUID

	// location is the delivery destination
	location kernel.Location

	// volume represents the order size (must be positive)
	volume int

	// status represents the current state in the order lifecycle
	status Status

	// events holds raised domain events not yet drained by the caller
	events []DomainEvent

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an Order in Created status and raises a CreatedEvent.
// All invariants are validated; errors from individual setters are aggregated.
func NewOrder(id kernel.UUID, location kernel.Location, volume int) (*Order, error) {
	order := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setLocation(location),
		order.setVolume(volume),
	); err != nil {
		return nil, err
	}

	order.raise(NewCreatedEvent(order.id))
	return order, nil
}

// RestoreOrder rehydrates an Order from persistent storage. It skips lifecycle
// side effects (no events are raised) but still rejects structurally impossible
// values: zero volume, invalid status, or a courier/status combination that
// violates the aggregate invariant.
func RestoreOrder(
	id kernel.UUID,
	location kernel.Location,
	volume int,
	status Status,
	courierID *kernel.UUID,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setLocation(location),
		order.setVolume(volume),
		order.setStatus(status),
		order.setCourierID(courierID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Location returns the delivery destination for the order.
func (o *Order) Location() kernel.Location {
	return o.location
}

// Volume returns the order's volume.
func (o *Order) Volume() int {
	return o.volume
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// ValidateAssign reports whether the order can currently be assigned.
func (o *Order) ValidateAssign() error {
	return o.status.ValidateAssign()
}

// Assign dispatches the order to a courier and moves the status to Assigned.
// Legal only from Created status with no courier set; the transition is
// rejected otherwise and the order is left untouched.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return ErrCourierAlreadyAssigned
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

// Complete marks the order as delivered and raises a CompletedEvent carrying
// the courier that delivered it. Requires an assigned courier; completing an
// already-Completed order is rejected.
func (o *Order) Complete() error {
	if o.courierID == nil {
		return ErrCourierIsNotAssigned
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.raise(NewCompletedEvent(o.id, *o.courierID))
	return nil
}

// Events returns a copy of the not-yet-drained domain events.
func (o *Order) Events() []DomainEvent {
	out := make([]DomainEvent, len(o.events))
	copy(out, o.events)
	return out
}

// TakeEvents drains the accumulated domain events, returning them and leaving
// the queue empty. The owning transaction calls this exactly once after a
// successful mutation so each event is recorded in the outbox exactly once.
func (o *Order) TakeEvents() []DomainEvent {
	events := o.events
	o.events = nil
	return events
}

// raise appends a domain event to the aggregate's queue.
func (o *Order) raise(event DomainEvent) {
	o.events = append(o.events, event)
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setLocation validates and sets the order's delivery destination.
func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

// setVolume validates and sets the order's volume.
func (o *Order) setVolume(volume int) error {
	if volume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("volume is invalid", fmt.Errorf("%d is not greater than 0", volume))
	}
	o.volume = volume
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setCourierID validates the courier/status combination during restoration.
func (o *Order) setCourierID(courierID *kernel.UUID) error {
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}

	if err := o.status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return err
	}

	o.courierID = courierID
	return nil
}
