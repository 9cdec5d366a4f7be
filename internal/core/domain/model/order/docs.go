// Package order contains the Order aggregate, its forward-only status state
// machine, and the closed set of domain events (CreatedEvent, CompletedEvent)
// the aggregate raises as its lifecycle advances. Events accumulate on the
// aggregate until the owning transaction drains them for the outbox.
package order
