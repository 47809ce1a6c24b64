package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrAddToCartCommandIsNotConstructed = errors.New(
		"AddToCartCommand must be created via NewAddToCartCommand constructor",
	)
	ErrQuantityDeltaIsZero = errors.New("quantity delta must not be zero")
)

// AddToCartCommand requests adding a product to a cart, or adjusting the
// quantity of an existing line. The quantity is a delta: positive on
// repeated adds, negative to reduce an existing line (never below one;
// removal is a separate command).
//
// Example:
//
//	owner, _ := kernel.NewGuestOwner(sessionToken)
//	cmd, err := NewAddToCartCommand(owner, productID, 2)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AddToCartCommand struct { //nolint:recvcheck //using for validation
	owner     kernel.Owner
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewAddToCartCommand creates the command, validating the owner, product ID,
// and that the quantity delta is non-zero.
func NewAddToCartCommand(owner kernel.Owner, productID kernel.UUID, quantity int) (AddToCartCommand, error) {
	cmd := AddToCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddToCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddToCartCommand) Validate() error {
	return c.guard.Validate(ErrAddToCartCommandIsNotConstructed)
}

// Owner returns the cart owner.
func (c AddToCartCommand) Owner() kernel.Owner {
	return c.owner
}

// ProductID returns the product to add or adjust.
func (c AddToCartCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the quantity delta.
func (c AddToCartCommand) Quantity() int {
	return c.quantity
}

func (c *AddToCartCommand) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	c.owner = owner
	return nil
}

func (c *AddToCartCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *AddToCartCommand) setQuantity(quantity int) error {
	if quantity == 0 {
		return ErrQuantityDeltaIsZero
	}
	c.quantity = quantity
	return nil
}
