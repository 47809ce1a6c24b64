package ports

import (
	"context"
	"time"
)

// Event types published by the core.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventCartMerged         = "cart.merged"
)

// Event is a notification about a state change in the core. Events are a
// fire-and-forget side channel: publishing failures are logged and ignored,
// correctness never depends on delivery.
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher is the outbound port for the notification side channel.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
