package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand triggers one dispatch tick: take the oldest pending
// order and assign the best free courier to it. Parameterless; the handler
// finds the work itself.
type AssignOrderCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to trigger a dispatch tick.
func NewAssignOrderCommand() AssignOrderCommand {
	return AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}
