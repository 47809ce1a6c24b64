package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// orderNumberSuffixBytes is the number of random bytes in an order number,
// rendered as twice as many hex characters.
const orderNumberSuffixBytes = 5

// NewOrderNumber generates an externally opaque, unique order number of the
// form "ORD-20260830-a1b2c3d4e5". The date prefix aids operators; uniqueness
// comes from the random suffix and is additionally enforced by the storage
// layer's unique index.
func NewOrderNumber() (string, error) {
	suffix := make([]byte, orderNumberSuffixBytes)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}

	return fmt.Sprintf("ORD-%s-%s",
		time.Now().UTC().Format("20060102"),
		hex.EncodeToString(suffix),
	), nil
}
