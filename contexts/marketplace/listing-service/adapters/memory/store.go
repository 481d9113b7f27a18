package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	application "relist/contexts/marketplace/listing-service/application"
	"relist/contexts/marketplace/listing-service/domain/entities"
	domainerrors "relist/contexts/marketplace/listing-service/domain/errors"
	"relist/contexts/marketplace/listing-service/ports"
)

// Store is an in-memory adapter implementing the listing ports for local
// runtime and tests. It is not intended as production persistence.
type Store struct {
	mu          sync.RWMutex
	listings    map[string]entities.Listing
	outbox      map[string]ports.OutboxMessage
	outboxOrder []string
	outboxSent  map[string]time.Time
	sequence    uint64
	logger      *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		listings:    make(map[string]entities.Listing),
		outbox:      make(map[string]ports.OutboxMessage),
		outboxOrder: make([]string, 0),
		outboxSent:  make(map[string]time.Time),
		logger:      application.ResolveLogger(logger),
	}
}

func (s *Store) GetListing(_ context.Context, listingID string) (entities.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[listingID]
	if !ok {
		return entities.Listing{}, domainerrors.ErrListingNotFound
	}
	return listing, nil
}

func (s *Store) CreateListing(_ context.Context, listing entities.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listing.ListingID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	s.listings[listing.ListingID] = listing

	s.logger.Debug("listing persisted in memory store",
		"event", "memory_create_listing",
		"module", "marketplace/listing-service",
		"layer", "adapter",
		"listing_id", listing.ListingID,
	)
	return nil
}

func (s *Store) UpdateListing(_ context.Context, listing entities.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listing.ListingID]; !ok {
		return domainerrors.ErrListingNotFound
	}
	s.listings[listing.ListingID] = listing
	return nil
}

func (s *Store) CreateListingWithOutbox(
	_ context.Context,
	listing entities.Listing,
	envelope ports.EventEnvelope,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listing.ListingID]; ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.listings[listing.ListingID] = listing
	s.appendOutboxLocked(envelope, payload)
	return nil
}

func (s *Store) UpdateListingWithOutbox(
	_ context.Context,
	listing entities.Listing,
	envelope ports.EventEnvelope,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[listing.ListingID]; !ok {
		return domainerrors.ErrListingNotFound
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.listings[listing.ListingID] = listing
	s.appendOutboxLocked(envelope, payload)
	return nil
}

func (s *Store) ListListings(_ context.Context, filter ports.ListingFilter) ([]entities.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.Listing, 0)
	for _, listing := range s.listings {
		if filter.Status != "" && listing.Status != filter.Status {
			continue
		}
		if filter.SellerID != "" && listing.SellerID != filter.SellerID {
			continue
		}
		result = append(result, listing)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ListingID < result[j].ListingID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) ExpireDueListings(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for id, listing := range s.listings {
		if !listing.IsDue(now) {
			continue
		}
		listing.Status = entities.ListingStatusExpired
		listing.UpdatedAt = now.UTC()
		s.listings[id] = listing
		expired++
	}
	return expired, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.appendOutboxLocked(envelope, payload)
	return nil
}

func (s *Store) appendOutboxLocked(envelope ports.EventEnvelope, payload []byte) {
	s.outbox[envelope.EventID] = ports.OutboxMessage{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	s.outboxOrder = append(s.outboxOrder, envelope.EventID)
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	messages := make([]ports.OutboxMessage, 0, limit)
	for _, id := range s.outboxOrder {
		if _, sent := s.outboxSent[id]; sent {
			continue
		}
		if msg, ok := s.outbox[id]; ok {
			messages = append(messages, msg)
		}
		if len(messages) >= limit {
			break
		}
	}
	return messages, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.outbox[outboxID]; !ok {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	s.outboxSent[outboxID] = publishedAt.UTC()
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	value := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("listing-%d", value), nil
}

// OutboxEvents exposes appended events for test inspection.
func (s *Store) OutboxEvents() []ports.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]ports.OutboxMessage, 0, len(s.outboxOrder))
	for _, id := range s.outboxOrder {
		if evt, ok := s.outbox[id]; ok {
			events = append(events, evt)
		}
	}
	return events
}
