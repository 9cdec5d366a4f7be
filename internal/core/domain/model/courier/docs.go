// Package courier provides the Courier aggregate of the dispatch domain:
// movement on the delivery grid and the storage places orders travel in.
//
// The package includes:
//   - Courier: the aggregate root managing identity, movement and order handling
//   - StoragePlace: an entity holding at most one order within a fixed capacity
//
// Key business rules:
//   - couriers have a valid unique identifier, name and positive speed
//   - movement advances one axis per call, at most speed cells, never overshooting
//   - orders land in the smallest empty storage place that fits them
//
// The package follows Domain-Driven Design principles: rich behavior behind
// validating constructors, with invariants enforced inside the aggregate.
package courier
