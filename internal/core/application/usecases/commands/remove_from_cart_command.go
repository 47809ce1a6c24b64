package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrRemoveFromCartCommandIsNotConstructed = errors.New(
	"RemoveFromCartCommand must be created via NewRemoveFromCartCommand constructor",
)

// RemoveFromCartCommand requests deleting one product line from a cart,
// regardless of its quantity.
type RemoveFromCartCommand struct { //nolint:recvcheck //using for validation
	owner     kernel.Owner
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveFromCartCommand creates the command, validating owner and product ID.
func NewRemoveFromCartCommand(owner kernel.Owner, productID kernel.UUID) (RemoveFromCartCommand, error) {
	cmd := RemoveFromCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setProductID(productID),
	); err != nil {
		return RemoveFromCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveFromCartCommand) Validate() error {
	return c.guard.Validate(ErrRemoveFromCartCommandIsNotConstructed)
}

// Owner returns the cart owner.
func (c RemoveFromCartCommand) Owner() kernel.Owner {
	return c.owner
}

// ProductID returns the product line to remove.
func (c RemoveFromCartCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c *RemoveFromCartCommand) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	c.owner = owner
	return nil
}

func (c *RemoveFromCartCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}
