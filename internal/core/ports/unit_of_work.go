package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command execution,
// isolating concurrent operations from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Handlers begin a
// transaction, perform all reads and writes through the transaction-scoped
// repositories, and commit or roll back explicitly.
type UnitOfWork interface {
	// Begin starts a database transaction. Calling Begin again while a
	// transaction is open reuses it.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Fails when no transaction is active.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// successful commit: rolling back a finished transaction is a no-op.
	Rollback(ctx context.Context) error

	// CourierRepository returns a CourierRepository bound to the current transaction.
	CourierRepository() CourierRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// OutboxRepository returns an OutboxRepository bound to the current
	// transaction, so outbox rows commit atomically with aggregate changes.
	OutboxRepository() OutboxRepository
}
