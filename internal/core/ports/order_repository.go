package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstInCreatedStatus retrieves one pending order awaiting dispatch.
	// An empty backlog surfaces as an errs.ErrObjectNotFound error.
	GetFirstInCreatedStatus(ctx context.Context) (*order.Order, error)

	// GetAllInAssignedStatus retrieves all orders currently dispatched to
	// couriers. Fed to the movement tick.
	GetAllInAssignedStatus(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
