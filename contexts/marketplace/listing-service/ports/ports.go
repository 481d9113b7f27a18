package ports

import (
	"context"
	"time"

	"relist/contexts/marketplace/listing-service/domain/entities"
	"relist/internal/shared/events"
)

// ListingFilter defines read-side filtering for the listing catalog.
// Status empty means all statuses.
type ListingFilter struct {
	Status   entities.ListingStatus
	SellerID string
}

// ListingRepository is the narrow persistence boundary for listings.
// Concurrency control for competing renewals is the storage's job; each
// update must land as a single atomic write per listing.
type ListingRepository interface {
	GetListing(ctx context.Context, listingID string) (entities.Listing, error)
	CreateListing(ctx context.Context, listing entities.Listing) error
	UpdateListing(ctx context.Context, listing entities.Listing) error
	// CreateListingWithOutbox must atomically persist the listing and outbox event.
	CreateListingWithOutbox(ctx context.Context, listing entities.Listing, envelope EventEnvelope) error
	// UpdateListingWithOutbox must atomically persist the update and outbox event.
	UpdateListingWithOutbox(ctx context.Context, listing entities.Listing, envelope EventEnvelope) error
	ListListings(ctx context.Context, filter ListingFilter) ([]entities.Listing, error)
	// ExpireDueListings transitions listed items whose expiry passed. It must
	// be idempotent: already-expired rows are never touched.
	ExpireDueListings(ctx context.Context, now time.Time) (int, error)
}

// Clock allows deterministic testing of window and sweep rules.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts listing/event identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PriceAdvice is the advisory overprice signal consulted on create/renew.
// It never blocks a mutation.
type PriceAdvice struct {
	Found        bool
	Flagged      bool
	PercentOver  int
	AveragePrice float64
}

// PriceAdvisor is an optional collaborator providing reference pricing.
type PriceAdvisor interface {
	CheckPrice(ctx context.Context, title string, price float64) (PriceAdvice, error)
}

// EventEnvelope reuses the canonical envelope shared across the repo.
type EventEnvelope = events.Envelope

// OutboxWriter appends integration events alongside state changes.
type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a topic consumer callback.
type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
