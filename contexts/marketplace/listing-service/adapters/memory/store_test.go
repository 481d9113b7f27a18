package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"relist/contexts/marketplace/listing-service/domain/entities"
	domainerrors "relist/contexts/marketplace/listing-service/domain/errors"
	"relist/contexts/marketplace/listing-service/ports"
)

func testListing(t *testing.T, listingID string, createdAt time.Time) entities.Listing {
	t.Helper()
	listing, err := entities.NewListing(
		listingID, "seller-1", "Road Bike", "", "", "", "sports",
		420, "", nil, "", createdAt,
	)
	if err != nil {
		t.Fatalf("building listing failed: %v", err)
	}
	return listing
}

func TestCreateListingRejectsDuplicateID(t *testing.T) {
	store := NewStore(nil)
	listing := testListing(t, "listing-1", time.Now())

	if err := store.CreateListing(context.Background(), listing); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	err := store.CreateListing(context.Background(), listing)
	if !errors.Is(err, domainerrors.ErrRepositoryInvariantBroke) {
		t.Fatalf("expected ErrRepositoryInvariantBroke, got %v", err)
	}
}

func TestCreateListingWithOutboxRejectsDuplicateWithoutEvent(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	listing := testListing(t, "listing-1", now)

	err := store.CreateListingWithOutbox(ctx, listing, ports.EventEnvelope{
		EventID:    "evt-1",
		EventType:  "listing.created",
		OccurredAt: now,
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	err = store.CreateListingWithOutbox(ctx, listing, ports.EventEnvelope{
		EventID:    "evt-2",
		EventType:  "listing.created",
		OccurredAt: now,
	})
	if !errors.Is(err, domainerrors.ErrRepositoryInvariantBroke) {
		t.Fatalf("expected ErrRepositoryInvariantBroke, got %v", err)
	}
	if got := len(store.OutboxEvents()); got != 1 {
		t.Fatalf("expected rejected create to append no event, got %d total", got)
	}
}

func TestUpdateListingWithOutboxUnknownListingAppendsNothing(t *testing.T) {
	store := NewStore(nil)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	listing := testListing(t, "listing-1", now)

	err := store.UpdateListingWithOutbox(context.Background(), listing, ports.EventEnvelope{
		EventID:    "evt-1",
		EventType:  "listing.renewed",
		OccurredAt: now,
	})
	if !errors.Is(err, domainerrors.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
	if got := len(store.OutboxEvents()); got != 0 {
		t.Fatalf("expected failed update to append no event, got %d", got)
	}
}

func TestOutboxPendingLifecycle(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	for _, id := range []string{"evt-1", "evt-2"} {
		err := store.AppendOutbox(ctx, ports.EventEnvelope{
			EventID:    id,
			EventType:  "listing.created",
			OccurredAt: now,
		})
		if err != nil {
			t.Fatalf("appending outbox failed: %v", err)
		}
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("listing pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending messages, got %d", len(pending))
	}
	if pending[0].OutboxID != "evt-1" {
		t.Fatalf("expected append order preserved, got %q first", pending[0].OutboxID)
	}

	if err := store.MarkOutboxPublished(ctx, "evt-1", now); err != nil {
		t.Fatalf("marking published failed: %v", err)
	}
	pending, err = store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("listing pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].OutboxID != "evt-2" {
		t.Fatalf("expected only evt-2 pending, got %+v", pending)
	}
}

func TestMarkOutboxPublishedUnknownID(t *testing.T) {
	store := NewStore(nil)
	err := store.MarkOutboxPublished(context.Background(), "missing", time.Now())
	if !errors.Is(err, domainerrors.ErrRepositoryInvariantBroke) {
		t.Fatalf("expected ErrRepositoryInvariantBroke, got %v", err)
	}
}
