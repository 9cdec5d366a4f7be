package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

// RelayOutboxCommand triggers one relay run: pending outbox messages are
// published to the broker and marked processed.
type RelayOutboxCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrRelayOutboxCommandIsNotConstructed = errors.New(
		"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
	)
)

// NewRelayOutboxCommand creates a command to trigger an outbox relay run.
func NewRelayOutboxCommand() RelayOutboxCommand {
	command := RelayOutboxCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
func (c *RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}
