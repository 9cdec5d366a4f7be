package courier

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrCannotStoreOrderInThisStoragePlace indicates that an order cannot be
	// stored here: the place is occupied or its capacity is too small.
	ErrCannotStoreOrderInThisStoragePlace = errors.New("cannot store order in this storage place")

	// ErrOrderNotStoredInThisPlace indicates that the specified order is not
	// currently held by this storage place.
	ErrOrderNotStoredInThisPlace = errors.New("order not stored in this place")

	// ErrStoragePlaceIsNotConstructed indicates that the StoragePlace was not
	// created via the NewStoragePlace constructor.
	ErrStoragePlaceIsNotConstructed = errors.New("StoragePlace must be created via NewStoragePlace constructor")
)

// StoragePlace is a container a courier carries orders in. It has a fixed
// volume capacity and holds at most one order at a time.
//
// Invariants:
//   - constructed only through NewStoragePlace / RestoreStoragePlace
//   - binary occupancy: empty or holding exactly one order
//   - a stored order's volume never exceeds the place's capacity
type StoragePlace struct {
	id          kernel.UUID
	name        string
	totalVolume int

	// orderID points at the currently stored order, nil when empty.
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewStoragePlace creates an empty StoragePlace with the given capacity.
// The name must be non-empty and totalVolume positive; validation errors
// are aggregated.
func NewStoragePlace(id kernel.UUID, name string, totalVolume int) (*StoragePlace, error) {
	place := &StoragePlace{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(place.setID(id), place.setName(name), place.setTotalVolume(totalVolume)); err != nil {
		return nil, err
	}

	return place, nil
}

// RestoreStoragePlace rehydrates a StoragePlace from persistent state,
// including its occupancy. The restored entity behaves identically to one
// built up through normal domain operations.
func RestoreStoragePlace(id kernel.UUID, name string, totalVolume int, orderID *kernel.UUID) (*StoragePlace, error) {
	place := &StoragePlace{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		place.setID(id),
		place.setName(name),
		place.setTotalVolume(totalVolume),
		place.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	return place, nil
}

// IsEqual compares storage places by identity.
func (s *StoragePlace) IsEqual(other *StoragePlace) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the unique identifier of the storage place.
func (s *StoragePlace) ID() kernel.UUID {
	return s.id
}

// Name returns the human-readable name of the storage place.
func (s *StoragePlace) Name() string {
	return s.name
}

// TotalVolume returns the volume capacity of the storage place.
func (s *StoragePlace) TotalVolume() int {
	return s.totalVolume
}

// OrderID returns the ID of the currently stored order, nil when empty.
func (s *StoragePlace) OrderID() *kernel.UUID {
	return s.orderID
}

// CanStore reports whether an order of the given volume fits: the place must
// be empty and its capacity at least the volume. A non-positive volume is a
// validation error.
func (s *StoragePlace) CanStore(volume int) (bool, error) {
	if volume <= 0 {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"volume is invalid",
			fmt.Errorf("%d is not greater than 0", volume),
		)
	}

	return !s.isOccupied() && s.totalVolume >= volume, nil
}

// Store places an order in this storage place, marking it occupied.
// Fails with ErrCannotStoreOrderInThisStoragePlace if the place is occupied
// or too small.
func (s *StoragePlace) Store(orderID kernel.UUID, volume int) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	canStore, err := s.CanStore(volume)
	if err != nil {
		return err
	}

	if !canStore {
		return ErrCannotStoreOrderInThisStoragePlace
	}

	s.orderID = &orderID
	return nil
}

// Clear removes the specified order, freeing the place for new orders.
// The stored order must match the given ID.
func (s *StoragePlace) Clear(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if !s.isOccupied() || !s.orderID.IsEqual(orderID) {
		return ErrOrderNotStoredInThisPlace
	}

	s.orderID = nil
	return nil
}

func (s *StoragePlace) isOccupied() bool {
	return s.orderID != nil
}

func (s *StoragePlace) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	s.id = id
	return nil
}

func (s *StoragePlace) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}

	s.name = name
	return nil
}

func (s *StoragePlace) setTotalVolume(totalVolume int) error {
	if totalVolume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalVolume is invalid",
			fmt.Errorf("%d is not greater than 0", totalVolume),
		)
	}

	s.totalVolume = totalVolume
	return nil
}

// setOrderID establishes the occupied state during restoration.
func (s *StoragePlace) setOrderID(orderID *kernel.UUID) error {
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return err
		}
	}

	s.orderID = orderID
	return nil
}

// Validate reports whether the StoragePlace was properly constructed.
// The zero value fails.
func (s *StoragePlace) Validate() error {
	if s == nil {
		return ErrStoragePlaceIsNotConstructed
	}
	return s.guard.Validate(ErrStoragePlaceIsNotConstructed)
}
