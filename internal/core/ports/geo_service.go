package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// GeoService resolves a street address to delivery grid coordinates.
// Backed by the external geocoding service; failures surface as errors and
// abort order creation.
type GeoService interface {
	GetLocation(ctx context.Context, street string) (kernel.Location, error)
}
