// Package kernel provides core domain primitives shared across the dispatch
// domain model, following Domain-Driven Design principles.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison
//   - Location: A value object representing coordinates on the dispatch grid,
//     with Manhattan distance as the grid metric
//
// These primitives enforce domain invariants through their constructors,
// are immutable, and are safe for concurrent use.
package kernel
