package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"

	"storefront/internal/pkg/guard"
)

// ErrOwnerIsNotConstructed is returned when an Owner was not created through
// NewUserOwner or NewGuestOwner.
var ErrOwnerIsNotConstructed = errs.NewValueIsRequiredError(
	"Owner must be created via NewUserOwner or NewGuestOwner")

// OwnerKind discriminates the two possible holders of a cart line.
type OwnerKind int

const (
	// OwnerKindUnknown is the invalid zero value.
	OwnerKindUnknown OwnerKind = iota

	// OwnerKindUser marks a cart owned by a registered user.
	OwnerKindUser

	// OwnerKindGuest marks a cart owned by an anonymous session.
	OwnerKindGuest
)

// String returns the human-readable name of the owner kind.
func (k OwnerKind) String() string {
	switch k {
	case OwnerKindUser:
		return "User"
	case OwnerKindGuest:
		return "Guest"
	default:
		return "Unknown"
	}
}

// Owner is a tagged variant identifying who holds a cart: a registered user
// (by user ID) or an anonymous guest (by session token). Exactly one of the
// two references is populated, which removes the both-or-neither ambiguity
// of a nullable dual-column scheme.
//
// Example:
//
//	user, _ := kernel.NewUserOwner(userID)
//	guest, _ := kernel.NewGuestOwner("sess-9f2c41d8")
type Owner struct {
	kind       OwnerKind
	userID     UUID
	guestToken string

	guard guard.ConstructorGuard
}

// NewUserOwner creates an Owner for a registered user.
// Returns an error if the user ID is invalid.
func NewUserOwner(userID UUID) (Owner, error) {
	if err := userID.Validate(); err != nil {
		return Owner{}, err
	}
	return Owner{
		kind:   OwnerKindUser,
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewGuestOwner creates an Owner for an anonymous session.
// Returns an error if the session token is empty.
func NewGuestOwner(sessionToken string) (Owner, error) {
	if sessionToken == "" {
		return Owner{}, errs.NewValueIsRequiredError("sessionToken")
	}
	return Owner{
		kind:       OwnerKindGuest,
		guestToken: sessionToken,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Owner was created through a constructor.
func (o Owner) Validate() error {
	return o.guard.Validate(ErrOwnerIsNotConstructed)
}

// Kind returns whether the owner is a user or a guest.
func (o Owner) Kind() OwnerKind {
	return o.kind
}

// IsUser reports whether the owner is a registered user.
func (o Owner) IsUser() bool {
	return o.kind == OwnerKindUser
}

// IsGuest reports whether the owner is an anonymous session.
func (o Owner) IsGuest() bool {
	return o.kind == OwnerKindGuest
}

// UserID returns the user identifier. Valid only when IsUser is true;
// for guests it returns the zero UUID.
func (o Owner) UserID() UUID {
	return o.userID
}

// GuestToken returns the session token. Valid only when IsGuest is true;
// for users it returns the empty string.
func (o Owner) GuestToken() string {
	return o.guestToken
}

// Reference returns the stored identifier regardless of kind: the user ID
// string for users, the session token for guests. Used by persistence
// adapters as the owner reference column.
func (o Owner) Reference() string {
	if o.kind == OwnerKindUser {
		return o.userID.String()
	}
	return o.guestToken
}

// IsEqual reports whether two owners reference the same holder.
func (o Owner) IsEqual(other Owner) bool {
	return o.kind == other.kind && o.userID == other.userID && o.guestToken == other.guestToken
}

// String renders the owner as "User(<id>)" or "Guest(<token>)" for logging.
func (o Owner) String() string {
	return fmt.Sprintf("%s(%s)", o.kind, o.Reference())
}
