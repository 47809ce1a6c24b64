package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// PaymentStatus tracks the payment side of an order, orthogonal to the
// fulfillment lifecycle. Payment capture itself happens in an external
// gateway; the core only records the outcome.
type PaymentStatus int

const (
	// PaymentUnknown is the invalid zero value.
	PaymentUnknown PaymentStatus = iota

	// PaymentUnpaid is the initial payment state at order creation.
	PaymentUnpaid

	// PaymentPaid indicates payment was captured. Required for refunds.
	PaymentPaid

	// PaymentRefunded indicates a captured payment was returned.
	PaymentRefunded

	// PaymentFailed indicates payment capture failed.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "Unknown",
		PaymentUnpaid:   "Unpaid",
		PaymentPaid:     "Paid",
		PaymentRefunded: "Refunded",
		PaymentFailed:   "Failed",
	}
}

// Validate checks that the PaymentStatus is one of the defined states.
func (p PaymentStatus) Validate() error {
	if p == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the human-readable payment status name.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
