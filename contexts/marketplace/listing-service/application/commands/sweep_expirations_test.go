package commands

import (
	"context"
	"testing"
	"time"

	"relist/contexts/marketplace/listing-service/adapters/memory"
)

func newSweepUseCase(store *memory.Store, clock fixedClock) SweepExpirationsUseCase {
	return SweepExpirationsUseCase{
		Listings:    store,
		Outbox:      store,
		Clock:       clock,
		IDGenerator: store,
	}
}

func TestSweepExpirationsMarksDueListings(t *testing.T) {
	store := memory.NewStore(nil)
	createdAt := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	seedListing(t, store, fixedClock{now: createdAt})

	uc := newSweepUseCase(store, fixedClock{now: createdAt.Add(14 * 24 * time.Hour)})
	result, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("expected sweep to succeed, got %v", err)
	}
	if result.ExpiredCount != 1 {
		t.Fatalf("expected 1 expired listing, got %d", result.ExpiredCount)
	}
}

func TestSweepExpirationsIsIdempotent(t *testing.T) {
	store := memory.NewStore(nil)
	createdAt := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	seedListing(t, store, fixedClock{now: createdAt})

	sweepAt := createdAt.Add(15 * 24 * time.Hour)
	uc := newSweepUseCase(store, fixedClock{now: sweepAt})

	first, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	if first.ExpiredCount != 1 {
		t.Fatalf("expected first sweep to expire 1, got %d", first.ExpiredCount)
	}

	second, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if second.ExpiredCount != 0 {
		t.Fatalf("expected second sweep to expire 0, got %d", second.ExpiredCount)
	}

	later := newSweepUseCase(store, fixedClock{now: sweepAt.Add(24 * time.Hour)})
	third, err := later.Execute(context.Background())
	if err != nil {
		t.Fatalf("later sweep failed: %v", err)
	}
	if third.ExpiredCount != 0 {
		t.Fatalf("expected later sweep to expire 0, got %d", third.ExpiredCount)
	}
}

func TestSweepExpirationsLeavesUndueListingsAlone(t *testing.T) {
	store := memory.NewStore(nil)
	createdAt := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	seedListing(t, store, fixedClock{now: createdAt})

	uc := newSweepUseCase(store, fixedClock{now: createdAt.Add(13 * 24 * time.Hour)})
	result, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("expected sweep to succeed, got %v", err)
	}
	if result.ExpiredCount != 0 {
		t.Fatalf("expected no listings to expire before the window closes, got %d", result.ExpiredCount)
	}
}

func TestSweepExpirationsEmitsEventOnlyWhenSomethingExpired(t *testing.T) {
	store := memory.NewStore(nil)
	createdAt := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	seedListing(t, store, fixedClock{now: createdAt})
	baseline := len(store.OutboxEvents())

	early := newSweepUseCase(store, fixedClock{now: createdAt.Add(time.Hour)})
	if _, err := early.Execute(context.Background()); err != nil {
		t.Fatalf("early sweep failed: %v", err)
	}
	if got := len(store.OutboxEvents()); got != baseline {
		t.Fatalf("expected no sweep event without expirations, got %d extra", got-baseline)
	}

	due := newSweepUseCase(store, fixedClock{now: createdAt.Add(14 * 24 * time.Hour)})
	if _, err := due.Execute(context.Background()); err != nil {
		t.Fatalf("due sweep failed: %v", err)
	}
	events := store.OutboxEvents()
	if len(events) != baseline+1 {
		t.Fatalf("expected exactly one sweep event, got %d extra", len(events)-baseline)
	}
	if events[len(events)-1].EventType != EventTypeSweepCompleted {
		t.Fatalf("expected event type %q, got %q", EventTypeSweepCompleted, events[len(events)-1].EventType)
	}
}
