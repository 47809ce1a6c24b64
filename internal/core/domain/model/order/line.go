package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line was not created via NewLine.
var ErrLineIsNotConstructed = errors.New("order Line must be created via NewLine")

// Line is an immutable order line frozen at checkout: product, SKU snapshot,
// quantity, and the unit price captured from the catalog at creation time.
// The price is never recomputed from the live catalog afterwards.
type Line struct {
	productID kernel.UUID
	sku       string
	quantity  int
	unitPrice kernel.Money

	isConstructed bool
}

// NewLine creates an order line. SKU must be non-empty, quantity >= 1, and
// the unit price a constructed Money value.
func NewLine(productID kernel.UUID, sku string, quantity int, unitPrice kernel.Money) (Line, error) {
	line := Line{isConstructed: true}

	if err := errors.Join(
		line.setProductID(productID),
		line.setSKU(sku),
		line.setQuantity(quantity),
		line.setUnitPrice(unitPrice),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// Validate ensures the Line was created through NewLine.
func (l Line) Validate() error {
	if !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ProductID returns the product this line refers to.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// SKU returns the stock-keeping unit captured at checkout.
func (l Line) SKU() string {
	return l.sku
}

// Quantity returns the number of units ordered.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the price per unit frozen at checkout time.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Total returns quantity times the frozen unit price.
func (l Line) Total() (kernel.Money, error) {
	return l.unitPrice.MultiplyBy(l.quantity)
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	l.sku = sku
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

func (l *Line) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	l.unitPrice = price
	return nil
}
