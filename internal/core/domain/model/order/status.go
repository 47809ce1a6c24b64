package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. The transition table is
// explicit and is the single source of truth for which edges are legal,
// independent of how statuses are stored.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Delivered ──> Refunded*
//	   │            │                                        (terminal)  (terminal)
//	   └────────────┴──> Cancelled (terminal)
//
//	*Refunded additionally requires paymentStatus = Paid.
type Status int

const (
	// StatusUnknown is the invalid zero value, which helps catch
	// uninitialized statuses coming from persistence or clients.
	StatusUnknown Status = iota

	// StatusPending is the unique initial state, entered at order creation
	// once inventory has been reserved.
	StatusPending

	// StatusConfirmed indicates the order has been accepted for fulfillment.
	StatusConfirmed

	// StatusProcessing indicates the order is being picked and packed.
	StatusProcessing

	// StatusShipped indicates the order left the warehouse; the inventory
	// reservation is committed at this point.
	StatusShipped

	// StatusDelivered indicates the order reached the customer. Terminal
	// except for the refund edge.
	StatusDelivered

	// StatusCancelled indicates the order was abandoned before shipment and
	// its reservation released. Terminal.
	StatusCancelled

	// StatusRefunded indicates a delivered, paid order was refunded. Terminal.
	StatusRefunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusPending:    "Pending",
		StatusConfirmed:  "Confirmed",
		StatusProcessing: "Processing",
		StatusShipped:    "Shipped",
		StatusDelivered:  "Delivered",
		StatusCancelled:  "Cancelled",
		StatusRefunded:   "Refunded",
	}
}

// transitionTable lists the legal target statuses for each source status.
// The Refunded edge carries an extra payment predicate checked in CanTransitionTo.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped},
		StatusShipped:    {StatusDelivered},
		StatusDelivered:  {StatusRefunded},
	}
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable status name, "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are permitted.
// Delivered is terminal on the happy path but still allows the refund edge.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// CanTransitionTo validates the edge from s to target against the transition
// table. Refunded additionally requires the order to have been paid.
// Returns an InvalidTransitionError when the edge is not permitted.
func (s Status) CanTransitionTo(target Status, payment PaymentStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}

	for _, allowed := range transitionTable()[s] {
		if allowed != target {
			continue
		}
		if target == StatusRefunded && payment != PaymentPaid {
			return NewInvalidTransitionError(s, target)
		}
		return nil
	}

	return NewInvalidTransitionError(s, target)
}
