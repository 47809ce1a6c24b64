package services

// CartMerger decides the quantity of a cart line after folding a guest cart
// into a user cart. The policy for a product present in both carts is
// summed demand capped at currently available stock, so the merge itself
// never claims more than the ledger can honor; capped excess is silently
// dropped and the client re-validates before checkout.
type CartMerger struct{}

// NewCartMerger creates a CartMerger.
func NewCartMerger() CartMerger {
	return CartMerger{}
}

// MergedQuantity returns min(guestQuantity+userQuantity, available).
// A non-positive result means the line cannot be kept at all (the product is
// out of stock); callers leave the user line unchanged in that case.
func (CartMerger) MergedQuantity(guestQuantity, userQuantity, available int) int {
	merged := guestQuantity + userQuantity
	if merged > available {
		merged = available
	}
	return merged
}
