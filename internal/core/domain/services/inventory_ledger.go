package services

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// InventoryLedger is the domain service through which all stock counter
// mutations flow. Callers never read-modify-write inventory records
// themselves; they express demand as reservation lines and the ledger
// applies it.
//
// Batch operations are all-or-nothing in two phases: every involved record
// is loaded and validated first, and only if the whole batch is satisfiable
// are the mutations applied and persisted. The surrounding unit-of-work
// transaction discards partial writes if a later step fails, and the
// per-record version check (errs.ErrVersionIsInvalid on conflict) makes
// concurrent mutations of the same product serializable; the caller retries
// the whole transaction on conflict.
//
// Example:
//
//	ledger := services.NewInventoryLedger()
//	err := ledger.Reserve(ctx, uow.InventoryRepository(), demand)
//	if errors.Is(err, inventory.ErrInsufficientStock) {
//	    // reject the checkout, nothing was changed
//	}
type InventoryLedger struct{}

// NewInventoryLedger creates an InventoryLedger.
func NewInventoryLedger() InventoryLedger {
	return InventoryLedger{}
}

// Reserve moves units from available to reserved for every line in the
// batch, atomically as a whole. If any single line cannot be satisfied the
// entire batch is rejected with an InsufficientStockError naming the product,
// and no counters change.
func (InventoryLedger) Reserve(
	ctx context.Context,
	repo ports.InventoryRepository,
	lines []inventory.ReservationLine,
) error {
	records, err := loadRecords(ctx, repo, lines)
	if err != nil {
		return err
	}

	// Phase 1: validate the whole batch before touching anything.
	for i, line := range lines {
		if !records[i].IsAvailable(line.Quantity) {
			return inventory.NewInsufficientStockError(
				line.ProductID, line.Quantity, records[i].QuantityAvailable())
		}
	}

	// Phase 2: apply and persist.
	for i, line := range lines {
		if err = records[i].Reserve(line.Quantity); err != nil {
			return err
		}
		if err = repo.UpdateCounters(ctx, records[i]); err != nil {
			return err
		}
	}

	return nil
}

// Release moves reserved units back to available, used when an order is
// cancelled before shipment. The caller must release exactly once per
// reservation; over-releasing fails with no counters changed.
func (InventoryLedger) Release(
	ctx context.Context,
	repo ports.InventoryRepository,
	lines []inventory.ReservationLine,
) error {
	records, err := loadRecords(ctx, repo, lines)
	if err != nil {
		return err
	}

	for i, line := range lines {
		if records[i].QuantityReserved() < line.Quantity {
			return errs.NewValueIsInvalidErrorWithCause("reservation",
				fmt.Errorf("product %s has %d reserved, cannot release %d",
					line.ProductID, records[i].QuantityReserved(), line.Quantity))
		}
	}

	for i, line := range lines {
		if err = records[i].Release(line.Quantity); err != nil {
			return err
		}
		if err = repo.UpdateCounters(ctx, records[i]); err != nil {
			return err
		}
	}

	return nil
}

// Commit permanently removes reserved units at shipment. Available counters
// are unaffected; the on-hand total shrinks.
func (InventoryLedger) Commit(
	ctx context.Context,
	repo ports.InventoryRepository,
	lines []inventory.ReservationLine,
) error {
	records, err := loadRecords(ctx, repo, lines)
	if err != nil {
		return err
	}

	for i, line := range lines {
		if records[i].QuantityReserved() < line.Quantity {
			return errs.NewValueIsInvalidErrorWithCause("reservation",
				fmt.Errorf("product %s has %d reserved, cannot commit %d",
					line.ProductID, records[i].QuantityReserved(), line.Quantity))
		}
	}

	for i, line := range lines {
		if err = records[i].CommitReservation(line.Quantity); err != nil {
			return err
		}
		if err = repo.UpdateCounters(ctx, records[i]); err != nil {
			return err
		}
	}

	return nil
}

// IsAvailable reports whether the requested quantity of a product can
// currently be reserved. Non-mutating; a true result is advisory only, the
// authoritative check happens inside Reserve.
func (InventoryLedger) IsAvailable(
	ctx context.Context,
	repo ports.InventoryRepository,
	productID kernel.UUID,
	quantity int,
) (bool, error) {
	record, err := repo.GetByProduct(ctx, productID)
	if err != nil {
		return false, err
	}
	return record.IsAvailable(quantity), nil
}

// loadRecords fetches the stock record for every line, rejecting batches
// with duplicate products since per-line application would double-count them.
func loadRecords(
	ctx context.Context,
	repo ports.InventoryRepository,
	lines []inventory.ReservationLine,
) ([]*inventory.Record, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	productIDs := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0", line.Quantity))
		}
		if _, ok := seen[line.ProductID]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("duplicate product %s in batch", line.ProductID))
		}
		seen[line.ProductID] = struct{}{}
		productIDs = append(productIDs, line.ProductID)
	}

	return repo.GetByProducts(ctx, productIDs)
}
