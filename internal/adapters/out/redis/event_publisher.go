// Package redis publishes core events to a redis pub/sub channel. The
// channel is a best-effort side feed for downstream consumers (notification
// senders, analytics); nothing in the core waits for delivery.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"

	"storefront/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

// DefaultChannel is the pub/sub channel events go to unless overridden.
const DefaultChannel = "storefront.events"

// EventPublisher implements ports.EventPublisher over redis PUBLISH.
// Publish failures are logged and swallowed; a dead redis never blocks a
// checkout.
type EventPublisher struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

// NewEventPublisher creates a publisher on the given channel. An empty
// channel name falls back to DefaultChannel.
func NewEventPublisher(client *redis.Client, channel string, logger *slog.Logger) *EventPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &EventPublisher{
		client:  client,
		channel: channel,
		logger:  logger.With("component", "event_publisher"),
	}
}

// Publish serializes the event to JSON and publishes it. Always returns nil;
// failures are logged because no caller can do anything useful with them.
func (p *EventPublisher) Publish(ctx context.Context, event ports.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event",
			"type", event.Type,
			"entity_id", event.EntityID,
			"error", err)
		return nil
	}

	if err = p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		p.logger.Error("failed to publish event",
			"type", event.Type,
			"entity_id", event.EntityID,
			"channel", p.channel,
			"error", err)
		return nil
	}

	p.logger.Debug("event published",
		"type", event.Type,
		"entity_id", event.EntityID)
	return nil
}
