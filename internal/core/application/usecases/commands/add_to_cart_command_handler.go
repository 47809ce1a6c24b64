package commands

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// maxConflictRetries bounds how often a handler retries a transaction after
// losing a concurrent-update race (optimistic version conflict or unique
// index collision).
const maxConflictRetries = 3

// AddToCartCommandHandler creates a cart line on first add and adjusts the
// quantity on repeated adds. Concurrent first adds for the same
// (owner, product) pair are resolved by retrying: the loser of the unique
// index race re-reads the line and increments it instead.
type AddToCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewAddToCartCommandHandler creates a handler for cart add operations.
func NewAddToCartCommandHandler(uowFactory CartUoWFactory) AddToCartCommandHandler {
	return AddToCartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add-to-cart command. Negative deltas that would drop
// the quantity below one are rejected; a delta below one on a missing line
// is rejected as well.
func (h AddToCartCommandHandler) Handle(ctx context.Context, cmd AddToCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = h.handleOnce(ctx, cmd)
		if err == nil || !errors.Is(err, errs.ErrVersionIsInvalid) {
			return err
		}
	}
	return err
}

func (h AddToCartCommandHandler) handleOnce(ctx context.Context, cmd AddToCartCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	line, err := cartRepo.Get(ctx, cmd.Owner(), cmd.ProductID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if cmd.Quantity() < 1 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("cannot create cart line with quantity %d", cmd.Quantity()))
		}
		line, err = cart.NewLine(kernel.NewUUID(), cmd.Owner(), cmd.ProductID(), cmd.Quantity())
		if err != nil {
			return err
		}
		if err = cartRepo.Add(ctx, line); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err = line.AdjustQuantity(cmd.Quantity()); err != nil {
			return err
		}
		if err = cartRepo.Update(ctx, line); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
