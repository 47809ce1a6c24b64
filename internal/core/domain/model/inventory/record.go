// Package inventory contains the stock-keeping side of the domain: the
// per-product Record aggregate with its available/reserved counters, and the
// ReservationLine value used to express demand against it.
//
// A Record is only ever mutated through the InventoryLedger domain service;
// order and cart logic never touch the counters directly.
package inventory

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record was not created via
	// NewRecord or RestoreRecord.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")

	// ErrInsufficientStock is the sentinel for reservation attempts that
	// exceed the available quantity. Wrap it with the product ID via
	// NewInsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports which product could not satisfy a
// reservation request. errors.Is(err, ErrInsufficientStock) matches it.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

// NewInsufficientStockError creates an InsufficientStockError for a product.
func NewInsufficientStockError(productID kernel.UUID, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ReservationLine expresses demand for a quantity of one product, used for
// batch reserve/release/commit calls on the ledger.
type ReservationLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// NewReservationLine creates a ReservationLine with a positive quantity.
func NewReservationLine(productID kernel.UUID, quantity int) (ReservationLine, error) {
	if err := productID.Validate(); err != nil {
		return ReservationLine{}, err
	}
	if quantity < 1 {
		return ReservationLine{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return ReservationLine{ProductID: productID, Quantity: quantity}, nil
}

// Record is the per-product stock aggregate. It tracks two counters:
// quantityAvailable (sellable now) and quantityReserved (claimed by pending
// orders). Their sum is the total on-hand stock; a reservation moves units
// between the counters, only CommitReservation destroys them.
//
// Invariants:
//   - both counters are always non-negative
//   - reserving requires quantityAvailable >= quantity
//   - releasing or committing requires quantityReserved >= quantity
//
// The version field carries the optimistic-lock token used by the
// persistence adapter; it is read-only on the aggregate.
type Record struct {
	productID         kernel.UUID
	quantityAvailable int
	quantityReserved  int
	reorderLevel      int
	version           int64

	isConstructed bool
}

// NewRecord creates a stock record for a product with an initial available
// quantity and a reorder threshold. Reserved starts at zero.
func NewRecord(productID kernel.UUID, quantityAvailable, reorderLevel int) (*Record, error) {
	record := &Record{isConstructed: true}

	if err := errors.Join(
		record.setProductID(productID),
		record.setQuantityAvailable(quantityAvailable),
		record.setReorderLevel(reorderLevel),
	); err != nil {
		return nil, err
	}

	return record, nil
}

// RestoreRecord reconstructs a Record from persistence, including the
// reserved counter and the optimistic-lock version.
func RestoreRecord(
	productID kernel.UUID,
	quantityAvailable, quantityReserved, reorderLevel int,
	version int64,
) (*Record, error) {
	record, err := NewRecord(productID, quantityAvailable, reorderLevel)
	if err != nil {
		return nil, err
	}

	if quantityReserved < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantityReserved",
			fmt.Errorf("%d is negative", quantityReserved))
	}

	record.quantityReserved = quantityReserved
	record.version = version
	return record, nil
}

// Validate ensures the Record was created through a constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ProductID returns the product this record keeps stock for.
func (r *Record) ProductID() kernel.UUID {
	return r.productID
}

// QuantityAvailable returns the sellable quantity.
func (r *Record) QuantityAvailable() int {
	return r.quantityAvailable
}

// QuantityReserved returns the quantity claimed by pending orders.
func (r *Record) QuantityReserved() int {
	return r.quantityReserved
}

// ReorderLevel returns the threshold below which the product should be restocked.
func (r *Record) ReorderLevel() int {
	return r.reorderLevel
}

// Version returns the optimistic-lock token loaded from persistence.
func (r *Record) Version() int64 {
	return r.version
}

// IsAvailable reports whether the requested quantity can currently be
// reserved. Non-mutating.
func (r *Record) IsAvailable(quantity int) bool {
	return quantity >= 1 && r.quantityAvailable >= quantity
}

// NeedsReorder reports whether the available quantity has dropped to or
// below the reorder level.
func (r *Record) NeedsReorder() bool {
	return r.quantityAvailable <= r.reorderLevel
}

// Reserve moves quantity units from available to reserved. Returns an
// InsufficientStockError when the available counter cannot cover the request;
// the record is unchanged on error.
func (r *Record) Reserve(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if r.quantityAvailable < quantity {
		return NewInsufficientStockError(r.productID, quantity, r.quantityAvailable)
	}

	r.quantityAvailable -= quantity
	r.quantityReserved += quantity
	return nil
}

// Release moves quantity units back from reserved to available. The caller
// must release exactly once per reservation; releasing more than is reserved
// fails and leaves the record unchanged.
func (r *Record) Release(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if r.quantityReserved < quantity {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("cannot release %d units, only %d reserved", quantity, r.quantityReserved))
	}

	r.quantityReserved -= quantity
	r.quantityAvailable += quantity
	return nil
}

// CommitReservation permanently removes quantity units from the reserved
// counter at shipment time. The available counter is unaffected.
func (r *Record) CommitReservation(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if r.quantityReserved < quantity {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("cannot commit %d units, only %d reserved", quantity, r.quantityReserved))
	}

	r.quantityReserved -= quantity
	return nil
}

func (r *Record) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	r.productID = productID
	return nil
}

func (r *Record) setQuantityAvailable(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantityAvailable",
			fmt.Errorf("%d is negative", quantity))
	}
	r.quantityAvailable = quantity
	return nil
}

func (r *Record) setReorderLevel(level int) error {
	if level < 0 {
		return errs.NewValueIsInvalidErrorWithCause("reorderLevel",
			fmt.Errorf("%d is negative", level))
	}
	r.reorderLevel = level
	return nil
}
