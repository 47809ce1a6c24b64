package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrMergeCartCommandIsNotConstructed = errors.New(
	"MergeCartCommand must be created via NewMergeCartCommand constructor",
)

// MergeCartCommand requests folding a guest session's cart into a user's
// cart at login time.
//
// Example:
//
//	cmd, err := NewMergeCartCommand(sessionToken, userID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // guest cart is left intact, safe to retry
//	}
type MergeCartCommand struct { //nolint:recvcheck //using for validation
	guestSessionToken string
	userID            kernel.UUID

	guard guard.ConstructorGuard
}

// NewMergeCartCommand creates the command, validating the session token and user ID.
func NewMergeCartCommand(guestSessionToken string, userID kernel.UUID) (MergeCartCommand, error) {
	cmd := MergeCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGuestSessionToken(guestSessionToken),
		cmd.setUserID(userID),
	); err != nil {
		return MergeCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MergeCartCommand) Validate() error {
	return c.guard.Validate(ErrMergeCartCommandIsNotConstructed)
}

// GuestSessionToken returns the anonymous session whose cart is folded in.
func (c MergeCartCommand) GuestSessionToken() string {
	return c.guestSessionToken
}

// UserID returns the destination user.
func (c MergeCartCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *MergeCartCommand) setGuestSessionToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("guestSessionToken")
	}
	c.guestSessionToken = token
	return nil
}

func (c *MergeCartCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}
