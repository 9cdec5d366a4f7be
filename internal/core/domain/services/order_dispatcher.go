package services

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// ErrCourierNotFound is returned when no suitable courier is available for
// the order: the candidate list is empty or nobody has free capacity.
var ErrCourierNotFound = errors.New("courier not found")

// OrderDispatcher is the domain service that picks the best courier for an
// order and performs the assignment.
//
// Selection is deterministic:
//   - only couriers with a free storage place fitting the order's volume qualify
//   - among those, minimal traverse length to the order's destination wins
//   - ties break toward the lexicographically smaller courier id
//
// The winner takes the order into storage and the order transitions to
// Assigned. Any failure aborts the dispatch with no partial mutation.
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch assigns the order to the best available courier and returns it.
// The order must be valid and in Created status. ErrCourierNotFound is
// returned when no candidate qualifies, leaving the order untouched.
func (o OrderDispatcher) Dispatch(order *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := order.ValidateAssign(); err != nil {
		return nil, err
	}

	bestCourier, err := o.findBestCourier(order, couriers)
	if err != nil {
		return nil, err
	}

	if err = bestCourier.TakeOrder(order.ID(), order.Volume()); err != nil {
		return nil, err
	}

	if err = order.Assign(bestCourier.ID()); err != nil {
		return nil, err
	}

	return bestCourier, nil
}

// findBestCourier ranks the candidates by traverse length to the order's
// destination, skipping couriers without capacity. Equal lengths resolve to
// the smaller courier id so repeated runs over the same state agree.
func (o OrderDispatcher) findBestCourier(order *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	var (
		bestCourier *courier.Courier
		bestLength  int
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		place, err := c.CanTakeOrder(order.Volume())
		if err != nil {
			return nil, err
		}
		if place == nil {
			continue
		}

		length, err := c.TraverseLength(order.Location())
		if err != nil {
			return nil, err
		}

		if bestCourier == nil ||
			length < bestLength ||
			(length == bestLength && c.ID().String() < bestCourier.ID().String()) {
			bestCourier = c
			bestLength = length
		}
	}

	if bestCourier == nil {
		return nil, ErrCourierNotFound
	}

	return bestCourier, nil
}
