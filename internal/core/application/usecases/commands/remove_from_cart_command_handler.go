package commands

import (
	"context"
)

// RemoveFromCartCommandHandler deletes a single cart line.
type RemoveFromCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewRemoveFromCartCommandHandler creates a handler for cart line removal.
func NewRemoveFromCartCommandHandler(uowFactory CartUoWFactory) RemoveFromCartCommandHandler {
	return RemoveFromCartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the remove command. Removing a line that does not exist
// reports errs.ErrObjectNotFound.
func (h RemoveFromCartCommandHandler) Handle(ctx context.Context, cmd RemoveFromCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.CartRepository().Remove(ctx, cmd.Owner(), cmd.ProductID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
