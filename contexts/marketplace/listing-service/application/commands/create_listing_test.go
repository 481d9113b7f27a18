package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"relist/contexts/marketplace/listing-service/adapters/memory"
	domainerrors "relist/contexts/marketplace/listing-service/domain/errors"
	"relist/contexts/marketplace/listing-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type stubAdvisor struct {
	advice ports.PriceAdvice
	err    error
	calls  int
}

func (a *stubAdvisor) CheckPrice(_ context.Context, _ string, _ float64) (ports.PriceAdvice, error) {
	a.calls++
	return a.advice, a.err
}

type failingIDGenerator struct{}

func (failingIDGenerator) NewID(_ context.Context) (string, error) {
	return "", errors.New("id generation unavailable")
}

func newCreateUseCase(store *memory.Store, clock fixedClock, advisor ports.PriceAdvisor) CreateListingUseCase {
	return CreateListingUseCase{
		Listings:    store,
		Advisor:     advisor,
		Clock:       clock,
		IDGenerator: store,
	}
}

func TestCreateListingSetsValidityWindow(t *testing.T) {
	store := memory.NewStore(nil)
	clock := fixedClock{now: time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)}
	uc := newCreateUseCase(store, clock, nil)

	result, err := uc.Execute(context.Background(), CreateListingCommand{
		SellerID: "seller-1",
		Title:    "Road Bike",
		Category: "sports",
		Price:    420,
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	wantExpires := clock.now.Add(14 * 24 * time.Hour)
	if !result.Listing.ExpiresAt.Equal(wantExpires) {
		t.Fatalf("expected expires_at %v, got %v", wantExpires, result.Listing.ExpiresAt)
	}
	if !result.Listing.CreatedAt.Equal(clock.now) {
		t.Fatalf("expected created_at %v, got %v", clock.now, result.Listing.CreatedAt)
	}
	if result.Listing.Status != "listed" {
		t.Fatalf("expected status listed, got %q", result.Listing.Status)
	}
}

func TestCreateListingRejectsBlankSeller(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newCreateUseCase(store, fixedClock{now: time.Now()}, nil)

	_, err := uc.Execute(context.Background(), CreateListingCommand{
		SellerID: "   ",
		Title:    "Road Bike",
		Category: "sports",
		Price:    420,
	})
	if !errors.Is(err, domainerrors.ErrInvalidListingInput) {
		t.Fatalf("expected ErrInvalidListingInput, got %v", err)
	}
}

func TestCreateListingRejectsNonPositivePrice(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newCreateUseCase(store, fixedClock{now: time.Now()}, nil)

	for _, price := range []float64{0, -5} {
		_, err := uc.Execute(context.Background(), CreateListingCommand{
			SellerID: "seller-1",
			Title:    "Road Bike",
			Category: "sports",
			Price:    price,
		})
		if !errors.Is(err, domainerrors.ErrInvalidListingInput) {
			t.Fatalf("price %v: expected ErrInvalidListingInput, got %v", price, err)
		}
	}
}

func TestCreateListingAppendsOutboxEvent(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newCreateUseCase(store, fixedClock{now: time.Now()}, nil)

	_, err := uc.Execute(context.Background(), CreateListingCommand{
		SellerID: "seller-1",
		Title:    "Road Bike",
		Category: "sports",
		Price:    420,
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	events := store.OutboxEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 outbox event, got %d", len(events))
	}
	if events[0].EventType != EventTypeListingCreated {
		t.Fatalf("expected event type %q, got %q", EventTypeListingCreated, events[0].EventType)
	}
}

func TestCreateListingSurfacesAdvisoryFlag(t *testing.T) {
	store := memory.NewStore(nil)
	advisor := &stubAdvisor{advice: ports.PriceAdvice{
		Found:        true,
		Flagged:      true,
		PercentOver:  50,
		AveragePrice: 100,
	}}
	uc := newCreateUseCase(store, fixedClock{now: time.Now()}, advisor)

	result, err := uc.Execute(context.Background(), CreateListingCommand{
		SellerID: "seller-1",
		Title:    "Road Bike",
		Category: "sports",
		Price:    150,
	})
	if err != nil {
		t.Fatalf("expected advisory flag to not block creation, got %v", err)
	}
	if advisor.calls != 1 {
		t.Fatalf("expected advisor to be consulted once, got %d", advisor.calls)
	}
	if !result.Advice.Flagged || result.Advice.PercentOver != 50 {
		t.Fatalf("expected flagged advice at 50%% over, got %+v", result.Advice)
	}
}

func TestCreateListingIgnoresAdvisorFailure(t *testing.T) {
	store := memory.NewStore(nil)
	advisor := &stubAdvisor{err: errors.New("reference set unavailable")}
	uc := newCreateUseCase(store, fixedClock{now: time.Now()}, advisor)

	result, err := uc.Execute(context.Background(), CreateListingCommand{
		SellerID: "seller-1",
		Title:    "Road Bike",
		Category: "sports",
		Price:    150,
	})
	if err != nil {
		t.Fatalf("expected advisor failure to not block creation, got %v", err)
	}
	if result.Advice.Found {
		t.Fatalf("expected empty advice after advisor failure, got %+v", result.Advice)
	}
}
