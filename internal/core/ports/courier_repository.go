// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the unit of work, the events
// producer and the geo service. Each capability gets its own small interface
// so adapters are swappable and mockable in tests.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by id with its complete storage place state.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllFree retrieves couriers available for dispatch: those not
	// currently carrying an order in Assigned status.
	GetAllFree(ctx context.Context) ([]*courier.Courier, error)

	// GetAll retrieves every courier. Used by the movement tick and the
	// read-side listings.
	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
