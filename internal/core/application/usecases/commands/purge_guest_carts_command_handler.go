package commands

import (
	"context"
	"time"
)

// PurgeGuestCartsCommandHandler removes abandoned guest cart lines. Intended
// to be driven by a periodic job rather than a request path.
type PurgeGuestCartsCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewPurgeGuestCartsCommandHandler creates a handler for guest cart purges.
func NewPurgeGuestCartsCommandHandler(uowFactory CartUoWFactory) PurgeGuestCartsCommandHandler {
	return PurgeGuestCartsCommandHandler{uowFactory: uowFactory}
}

// Handle deletes guest lines last touched before now minus the command's
// duration and returns how many were removed.
func (h PurgeGuestCartsCommandHandler) Handle(
	ctx context.Context,
	cmd PurgeGuestCartsCommand,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-cmd.OlderThan())

	purged, err := uow.CartRepository().DeleteGuestLinesBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
