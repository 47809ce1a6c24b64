package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created via
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidTransition is the sentinel for rejected status transitions.
	// Wrap it with the edge via NewInvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvalidTransitionError reports which status edge was rejected.
// errors.Is(err, ErrInvalidTransition) matches it.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for an edge.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Order is the aggregate root for a customer order. It is created from a
// cart snapshot at checkout with its inventory already reserved, then driven
// through the status lifecycle by TransitionTo. Orders are never physically
// deleted, only moved to a terminal status.
//
// Invariants:
//   - at least one line; line unit prices are frozen at creation
//   - status changes only through the transition table in status.go
//   - updatedAt moves forward on every successful transition
type Order struct {
	id            kernel.UUID
	orderNumber   string
	ownerID       kernel.UUID
	status        Status
	storedStatus  Status
	paymentStatus PaymentStatus
	lines         []Line
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewOrder creates an order in StatusPending with payment state Unpaid.
// The lines must already carry frozen prices; the slice is copied.
func NewOrder(id kernel.UUID, orderNumber string, ownerID kernel.UUID, lines []Line) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        StatusPending,
		storedStatus:  StatusPending,
		paymentStatus: PaymentUnpaid,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setOwnerID(ownerID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence with its stored
// status, payment state, and timestamps.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	ownerID kernel.UUID,
	status Status,
	paymentStatus PaymentStatus,
	lines []Line,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, orderNumber, ownerID, lines)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), paymentStatus.Validate()); err != nil {
		return nil, err
	}

	o.status = status
	o.storedStatus = status
	o.paymentStatus = paymentStatus
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the externally visible, opaque order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// OwnerID returns the user the order belongs to.
func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// StoredStatus returns the status the order carried when it was loaded from
// persistence. It does not move with TransitionTo; updates conditional on it
// serialize concurrent transitions of the same order.
func (o *Order) StoredStatus() Status {
	return o.storedStatus
}

// PaymentStatus returns the current payment state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Lines returns a copy of the order lines in checkout order.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed status.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ReservationLines projects the order lines into ledger demand, used for the
// release on cancellation and the commit on shipment.
func (o *Order) ReservationLines() ([]inventory.ReservationLine, error) {
	reservations := make([]inventory.ReservationLine, 0, len(o.lines))
	for _, line := range o.lines {
		reservation, err := inventory.NewReservationLine(line.ProductID(), line.Quantity())
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

// TransitionTo moves the order to target if the transition table permits the
// edge from the current status. On success the status and updatedAt change;
// on failure the order is untouched and an InvalidTransitionError is returned.
//
// Inventory effects (release on cancel, commit on ship) are the caller's
// responsibility; the aggregate only guards the state machine.
func (o *Order) TransitionTo(target Status) error {
	if err := o.status.CanTransitionTo(target, o.paymentStatus); err != nil {
		return err
	}

	o.status = target
	o.updatedAt = time.Now().UTC()

	if target == StatusRefunded {
		o.paymentStatus = PaymentRefunded
	}
	return nil
}

// MarkPaid records successful payment capture. Only an unpaid order can be
// marked paid.
func (o *Order) MarkPaid() error {
	if o.paymentStatus != PaymentUnpaid {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("cannot mark %s order as paid", o.paymentStatus))
	}
	o.paymentStatus = PaymentPaid
	o.updatedAt = time.Now().UTC()
	return nil
}

// MarkPaymentFailed records a failed payment capture attempt.
func (o *Order) MarkPaymentFailed() error {
	if o.paymentStatus != PaymentUnpaid {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("cannot fail payment of %s order", o.paymentStatus))
	}
	o.paymentStatus = PaymentFailed
	o.updatedAt = time.Now().UTC()
	return nil
}

// IsCancellable reports whether the order may still be cancelled: only
// before fulfillment starts, from Pending or Confirmed.
func (o *Order) IsCancellable() bool {
	return o.status == StatusPending || o.status == StatusConfirmed
}

// IsRefundable reports whether the order qualifies for a refund: delivered
// and paid.
func (o *Order) IsRefundable() bool {
	return o.status == StatusDelivered && o.paymentStatus == PaymentPaid
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}
