package workers

import (
	"context"
	"log/slog"

	application "relist/contexts/marketplace/listing-service/application"
	"relist/contexts/marketplace/listing-service/ports"
)

const (
	listingEventsTopic      = "marketplace.listings"
	listingEventsAuditGroup = "listing-events-audit-cg"
)

// ListingEventsConsumer tails the listing topic and writes an audit line per
// event. It is the worker-side tap verifying that relayed events arrive.
type ListingEventsConsumer struct {
	Subscriber    ports.EventSubscriber
	Topic         string
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c ListingEventsConsumer) Start(ctx context.Context) error {
	topic := c.Topic
	if topic == "" {
		topic = listingEventsTopic
	}
	group := c.ConsumerGroup
	if group == "" {
		group = listingEventsAuditGroup
	}
	return c.Subscriber.Subscribe(ctx, topic, group, c.handleEvent)
}

func (c ListingEventsConsumer) handleEvent(_ context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	logger.Info("listing event observed",
		"event", "listing_event_observed",
		"module", "marketplace/listing-service",
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"partition_key", event.PartitionKey,
	)
	return nil
}
