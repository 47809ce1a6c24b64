package commands

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrPurgeGuestCartsCommandIsNotConstructed = errors.New(
	"PurgeGuestCartsCommand must be created via NewPurgeGuestCartsCommand constructor",
)

// PurgeGuestCartsCommand requests deletion of guest cart lines that have not
// been touched for longer than the given duration. User cart lines are never
// purged.
type PurgeGuestCartsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewPurgeGuestCartsCommand creates the command. The duration must be positive.
func NewPurgeGuestCartsCommand(olderThan time.Duration) (PurgeGuestCartsCommand, error) {
	if olderThan <= 0 {
		return PurgeGuestCartsCommand{}, errs.NewValueIsOutOfRangeError("olderThan", olderThan, 1, time.Duration(1<<63-1))
	}

	return PurgeGuestCartsCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeGuestCartsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeGuestCartsCommandIsNotConstructed)
}

// OlderThan returns the minimum age a guest line must have to be purged.
func (c PurgeGuestCartsCommand) OlderThan() time.Duration {
	return c.olderThan
}
