package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// HistoryRepository defines the append-only persistence contract for order
// status history. Entries are written in the same transaction as the
// transition they record, so their order matches the order's actual
// transition sequence.
type HistoryRepository interface {
	// Append persists one history entry. Entries are never updated or deleted.
	Append(ctx context.Context, entry *order.HistoryEntry) error

	// ListByOrder retrieves an order's entries in insertion order, oldest
	// first, starting with the creation entry.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error)
}
