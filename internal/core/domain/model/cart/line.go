// Package cart contains the cart Line entity. A line records how many units
// of one product an owner (registered user or guest session) intends to buy.
// The store enforces at most one line per (owner, product) pair; repeated
// adds increment the existing line instead of creating a new one.
package cart

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line was not created via
// NewLine or RestoreLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine")

// Line is a single cart entry: an owner, a product, and a quantity of at
// least one. addedAt records insertion time and drives both display ordering
// and guest-cart expiry.
type Line struct {
	id        kernel.UUID
	owner     kernel.Owner
	productID kernel.UUID
	quantity  int
	addedAt   time.Time

	isConstructed bool
}

// NewLine creates a cart line with quantity >= 1, stamped with the current time.
func NewLine(id kernel.UUID, owner kernel.Owner, productID kernel.UUID, quantity int) (*Line, error) {
	line := &Line{
		addedAt:       time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		line.setID(id),
		line.setOwner(owner),
		line.setProductID(productID),
		line.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// RestoreLine reconstructs a cart line from persistence, preserving its
// original addedAt timestamp.
func RestoreLine(
	id kernel.UUID,
	owner kernel.Owner,
	productID kernel.UUID,
	quantity int,
	addedAt time.Time,
) (*Line, error) {
	line, err := NewLine(id, owner, productID, quantity)
	if err != nil {
		return nil, err
	}
	line.addedAt = addedAt
	return line, nil
}

// Validate ensures the Line was created through a constructor.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// Owner returns who holds this line.
func (l *Line) Owner() kernel.Owner {
	return l.owner
}

// ProductID returns the product the line refers to.
func (l *Line) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the number of units, always >= 1.
func (l *Line) Quantity() int {
	return l.quantity
}

// AddedAt returns when the line was first added to the cart.
func (l *Line) AddedAt() time.Time {
	return l.addedAt
}

// AdjustQuantity applies a positive or negative delta. The resulting
// quantity must stay at least 1; deltas that would drop below that are
// rejected and the line is unchanged (removal is a separate operation).
func (l *Line) AdjustQuantity(delta int) error {
	if delta == 0 {
		return errs.NewValueIsInvalidErrorWithCause("delta", errors.New("delta must not be zero"))
	}

	newQuantity := l.quantity + delta
	if newQuantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("delta",
			fmt.Errorf("adjusting by %d would drop quantity to %d", delta, newQuantity))
	}

	l.quantity = newQuantity
	return nil
}

// SetQuantity replaces the quantity outright. Used by the cart merge, which
// computes the merged quantity externally.
func (l *Line) SetQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

// ReassignTo transfers the line to a new owner, keeping id, product,
// quantity and addedAt. Used when folding a guest cart into a user cart.
func (l *Line) ReassignTo(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	l.owner = owner
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	l.owner = owner
	return nil
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}
