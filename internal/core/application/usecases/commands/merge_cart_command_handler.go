package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ErrMergeFailed wraps any failure during the cart merge. The transaction is
// rolled back, so the guest cart is left intact and the merge can be retried.
var ErrMergeFailed = errors.New("cart merge failed")

// MergeCartCommandHandler folds a guest cart into a user cart in one
// transaction. For products present in both carts the merged quantity is
// summed demand capped at available stock; non-conflicting guest lines are
// reassigned outright. All guest lines are gone afterwards: either merged,
// reassigned, or (when the product is out of stock) dropped.
type MergeCartCommandHandler struct {
	uowFactory MergeUoWFactory
	merger     services.CartMerger
	publisher  ports.EventPublisher
}

// NewMergeCartCommandHandler creates a handler for cart merges.
func NewMergeCartCommandHandler(
	uowFactory MergeUoWFactory,
	merger services.CartMerger,
	publisher ports.EventPublisher,
) MergeCartCommandHandler {
	return MergeCartCommandHandler{
		uowFactory: uowFactory,
		merger:     merger,
		publisher:  publisher,
	}
}

// Handle processes the merge command. Any failure reports ErrMergeFailed
// with the cause attached and leaves both carts unchanged.
func (h MergeCartCommandHandler) Handle(ctx context.Context, cmd MergeCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	guestOwner, err := kernel.NewGuestOwner(cmd.GuestSessionToken())
	if err != nil {
		return err
	}
	userOwner, err := kernel.NewUserOwner(cmd.UserID())
	if err != nil {
		return err
	}

	if err = h.merge(ctx, guestOwner, userOwner); err != nil {
		return errors.Join(ErrMergeFailed, err)
	}

	h.publishMerged(ctx, cmd)
	return nil
}

func (h MergeCartCommandHandler) merge(ctx context.Context, guestOwner, userOwner kernel.Owner) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	inventoryRepo := uow.InventoryRepository()

	guestLines, err := cartRepo.ListByOwner(ctx, guestOwner)
	if err != nil {
		return err
	}
	if len(guestLines) == 0 {
		return uow.Commit(ctx)
	}

	for _, guestLine := range guestLines {
		userLine, getErr := cartRepo.Get(ctx, userOwner, guestLine.ProductID())
		switch {
		case errors.Is(getErr, errs.ErrObjectNotFound):
			if err = guestLine.ReassignTo(userOwner); err != nil {
				return err
			}
			if err = cartRepo.Update(ctx, guestLine); err != nil {
				return err
			}
		case getErr != nil:
			return getErr
		default:
			if err = h.mergeConflict(ctx, cartRepo, inventoryRepo, guestLine.Quantity(), userLine); err != nil {
				return err
			}
			if err = cartRepo.Remove(ctx, guestOwner, guestLine.ProductID()); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

// mergeConflict resolves a product present in both carts: summed demand
// capped at available stock. When the product is entirely out of stock the
// user line is left as it was.
func (h MergeCartCommandHandler) mergeConflict(
	ctx context.Context,
	cartRepo ports.CartRepository,
	inventoryRepo ports.InventoryRepository,
	guestQuantity int,
	userLine *cart.Line,
) error {
	record, err := inventoryRepo.GetByProduct(ctx, userLine.ProductID())
	if err != nil {
		return err
	}

	merged := h.merger.MergedQuantity(guestQuantity, userLine.Quantity(), record.QuantityAvailable())
	if merged < 1 || merged == userLine.Quantity() {
		return nil
	}

	if err = userLine.SetQuantity(merged); err != nil {
		return err
	}
	return cartRepo.Update(ctx, userLine)
}

func (h MergeCartCommandHandler) publishMerged(ctx context.Context, cmd MergeCartCommand) {
	if h.publisher == nil {
		return
	}
	_ = h.publisher.Publish(ctx, ports.Event{
		Type:       ports.EventCartMerged,
		EntityID:   cmd.UserID().String(),
		Detail:     cmd.GuestSessionToken(),
		OccurredAt: time.Now().UTC(),
	})
}
