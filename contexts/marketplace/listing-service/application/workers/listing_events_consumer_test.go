package workers

import (
	"context"
	"testing"
	"time"

	"relist/contexts/marketplace/listing-service/ports"
)

type captureSubscriber struct {
	topic   string
	group   string
	handler func(context.Context, ports.EventEnvelope) error
}

func (s *captureSubscriber) Subscribe(
	_ context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	s.topic = topic
	s.group = consumerGroup
	s.handler = handler
	return nil
}

func TestListingEventsConsumerSubscribesWithDefaults(t *testing.T) {
	subscriber := &captureSubscriber{}
	consumer := ListingEventsConsumer{Subscriber: subscriber}

	if err := consumer.Start(context.Background()); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	if subscriber.topic != "marketplace.listings" {
		t.Fatalf("expected default topic, got %q", subscriber.topic)
	}
	if subscriber.group != "listing-events-audit-cg" {
		t.Fatalf("expected default consumer group, got %q", subscriber.group)
	}

	err := subscriber.handler(context.Background(), ports.EventEnvelope{
		EventID:    "evt-1",
		EventType:  "listing.created",
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("expected handler to accept the event, got %v", err)
	}
}
