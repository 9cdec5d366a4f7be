package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// courierDefaultBagName is the name of the bag every new courier starts with.
	courierDefaultBagName = "Сумка"
	// courierDefaultBagVolume is the capacity of the default bag.
	courierDefaultBagVolume = 10
)

var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrSpeedIsRequired is returned when creating a courier with non-positive speed.
	ErrSpeedIsRequired = errs.NewValueIsRequiredError("speed")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrStoragePlaceNotFound is returned when no storage place can hold the order.
	ErrStoragePlaceNotFound = errors.New("storage place not found")
)

// Courier is the aggregate root for a delivery courier: identity, movement
// on the grid and the storage places it carries orders in.
//
// Key rules:
//   - a courier has a valid UUID, non-empty name and positive speed
//   - Move advances along exactly one axis per call, the one with the larger
//     remaining offset, at most speed cells, never overshooting
//   - orders go into the smallest empty storage place that fits (best fit)
//   - every new courier starts with a default bag of volume 10
type Courier struct {
	id            kernel.UUID
	name          string
	speed         int
	location      kernel.Location
	storagePlaces []*StoragePlace

	guard guard.ConstructorGuard
}

// NewCourier creates a Courier with a default storage bag.
// All parameters are validated and validation errors are aggregated.
func NewCourier(id kernel.UUID, name string, speed int, location kernel.Location) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setSpeed(speed),
		courier.setLocation(location),
		courier.AddStoragePlace(courierDefaultBagName, courierDefaultBagVolume),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier rehydrates a Courier from persistent state together with its
// storage places and their occupancy. Unlike NewCourier it does not create a
// default bag: the persisted collection is taken as-is and must be non-empty.
func RestoreCourier(
	id kernel.UUID,
	name string,
	speed int,
	location kernel.Location,
	storagePlaces []*StoragePlace,
) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setSpeed(speed),
		courier.setLocation(location),
		courier.setStoragePlaces(storagePlaces),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate reports whether the Courier was properly constructed.
// The zero value fails.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// Speed returns how many cells the courier advances per move.
func (c *Courier) Speed() int {
	return c.speed
}

// Location returns the current position of the courier on the grid.
func (c *Courier) Location() kernel.Location {
	return c.location
}

// StoragePlaces returns a copy of the courier's storage places.
func (c *Courier) StoragePlaces() []*StoragePlace {
	out := make([]*StoragePlace, len(c.storagePlaces))
	copy(out, c.storagePlaces)
	return out
}

// AddStoragePlace attaches a new storage container to the courier,
// expanding its carrying capacity.
func (c *Courier) AddStoragePlace(name string, volume int) error {
	storagePlace, err := NewStoragePlace(kernel.NewUUID(), name, volume)
	if err != nil {
		return err
	}

	c.storagePlaces = append(c.storagePlaces, storagePlace)
	return nil
}

// CanTakeOrder returns the storage place an order of the given volume would
// go into, or nil when nothing fits. Selection is best fit: among the empty
// places with sufficient capacity, the one with the smallest capacity wins.
// The courier is not mutated.
func (c *Courier) CanTakeOrder(volume int) (*StoragePlace, error) {
	return c.findStorageForVolume(volume)
}

// TakeOrder stores the order in the best-fitting storage place.
// Fails with ErrStoragePlaceNotFound when no empty place can hold the volume.
func (c *Courier) TakeOrder(orderID kernel.UUID, volume int) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	storagePlace, err := c.findStorageForVolume(volume)
	if err != nil {
		return err
	}

	if storagePlace == nil {
		return ErrStoragePlaceNotFound
	}

	return storagePlace.Store(orderID, volume)
}

// CompleteOrder frees the storage place holding the order. When the courier
// does not carry the order this is a no-op: completion must stay idempotent
// across retried deliveries.
func (c *Courier) CompleteOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	storagePlace := c.findStoragePlaceByOrderID(orderID)
	if storagePlace == nil {
		return nil
	}

	return storagePlace.Clear(orderID)
}

// TraverseLength returns the number of moves needed to reach the destination:
// Manhattan distance divided by speed, rounded up. Used to rank couriers when
// dispatching, not to predict the actual path.
func (c *Courier) TraverseLength(destination kernel.Location) (int, error) {
	if err := destination.Validate(); err != nil {
		return 0, err
	}

	distance, err := c.location.Distance(destination)
	if err != nil {
		return 0, err
	}

	return (distance + c.speed - 1) / c.speed, nil
}

// Move advances the courier one step toward the target.
//
// Exactly one axis changes per call: the one with the larger absolute offset
// to the target, x on ties. The courier covers min(speed, remaining offset)
// cells along that axis, so it never overshoots. Already being at the target
// is a no-op.
func (c *Courier) Move(target kernel.Location) error {
	if err := target.Validate(); err != nil {
		return err
	}

	curX, curY := c.location.X(), c.location.Y()
	dx := target.X() - curX
	dy := target.Y() - curY
	if dx == 0 && dy == 0 {
		return nil
	}

	if abs(dx) >= abs(dy) {
		step := minInt(c.speed, int(abs(dx)))
		if dx > 0 {
			curX += kernel.Coordinate(step) //nolint:gosec // bounded by the grid
		} else {
			curX -= kernel.Coordinate(step) //nolint:gosec // bounded by the grid
		}
	} else {
		step := minInt(c.speed, int(abs(dy)))
		if dy > 0 {
			curY += kernel.Coordinate(step) //nolint:gosec // bounded by the grid
		} else {
			curY -= kernel.Coordinate(step) //nolint:gosec // bounded by the grid
		}
	}

	newLocation, err := kernel.NewLocation(curX, curY)
	if err != nil {
		return err
	}
	return c.setLocation(newLocation)
}

// findStorageForVolume picks the best-fitting empty storage place for the
// volume: sufficient capacity, smallest capacity wins. Returns nil when no
// place fits.
func (c *Courier) findStorageForVolume(volume int) (*StoragePlace, error) {
	var best *StoragePlace
	for _, storagePlace := range c.storagePlaces {
		canStore, err := storagePlace.CanStore(volume)
		if err != nil {
			return nil, err
		}
		if !canStore {
			continue
		}

		if best == nil || storagePlace.TotalVolume() < best.TotalVolume() {
			best = storagePlace
		}
	}

	return best, nil
}

// findStoragePlaceByOrderID returns the storage place holding the order,
// nil when the courier does not carry it.
func (c *Courier) findStoragePlaceByOrderID(orderID kernel.UUID) *StoragePlace {
	for _, storagePlace := range c.storagePlaces {
		if storagePlace.OrderID() != nil && storagePlace.OrderID().IsEqual(orderID) {
			return storagePlace
		}
	}

	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setSpeed(speed int) error {
	if speed <= 0 {
		return ErrSpeedIsRequired
	}

	c.speed = speed
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

// setStoragePlaces establishes the storage collection during restoration.
func (c *Courier) setStoragePlaces(storagePlaces []*StoragePlace) error {
	if len(storagePlaces) == 0 {
		return errs.NewValueIsRequiredError("storage places are required")
	}

	for _, sp := range storagePlaces {
		if err := sp.Validate(); err != nil {
			return err
		}
	}

	c.storagePlaces = make([]*StoragePlace, len(storagePlaces))
	copy(c.storagePlaces, storagePlaces)
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(x kernel.Coordinate) kernel.Coordinate {
	if x < 0 {
		return -x
	}
	return x
}
