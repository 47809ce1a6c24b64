package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrClearCartCommandIsNotConstructed = errors.New(
	"ClearCartCommand must be created via NewClearCartCommand constructor",
)

// ClearCartCommand requests deleting every line from a cart.
type ClearCartCommand struct { //nolint:recvcheck //using for validation
	owner kernel.Owner

	guard guard.ConstructorGuard
}

// NewClearCartCommand creates the command, validating the owner.
func NewClearCartCommand(owner kernel.Owner) (ClearCartCommand, error) {
	cmd := ClearCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOwner(owner); err != nil {
		return ClearCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

// Owner returns the cart owner.
func (c ClearCartCommand) Owner() kernel.Owner {
	return c.owner
}

func (c *ClearCartCommand) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	c.owner = owner
	return nil
}
