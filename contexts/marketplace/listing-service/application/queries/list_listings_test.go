package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"relist/contexts/marketplace/listing-service/adapters/memory"
	"relist/contexts/marketplace/listing-service/domain/entities"
	domainerrors "relist/contexts/marketplace/listing-service/domain/errors"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore(nil)
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	for i, spec := range []struct {
		id     string
		seller string
		offset time.Duration
	}{
		{"listing-a", "seller-1", 0},
		{"listing-b", "seller-2", time.Hour},
		{"listing-c", "seller-1", 2 * time.Hour},
	} {
		listing, err := entities.NewListing(
			spec.id, spec.seller, "Road Bike", "", "", "", "sports",
			float64(100+i), "", nil, "", base.Add(spec.offset),
		)
		if err != nil {
			t.Fatalf("building listing failed: %v", err)
		}
		if err := store.CreateListing(context.Background(), listing); err != nil {
			t.Fatalf("seeding listing failed: %v", err)
		}
	}
	return store
}

func TestListListingsNewestFirst(t *testing.T) {
	store := seedStore(t)
	uc := ListListingsUseCase{Listings: store}

	result, err := uc.Execute(context.Background(), ListListingsQuery{})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(result.Items))
	}
	if result.Items[0].ListingID != "listing-c" || result.Items[2].ListingID != "listing-a" {
		t.Fatalf("expected newest first ordering, got %q..%q",
			result.Items[0].ListingID, result.Items[2].ListingID)
	}
}

func TestListListingsFiltersBySeller(t *testing.T) {
	store := seedStore(t)
	uc := ListListingsUseCase{Listings: store}

	result, err := uc.Execute(context.Background(), ListListingsQuery{SellerID: "seller-1"})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 listings for seller-1, got %d", len(result.Items))
	}
}

func TestListListingsFiltersByStatus(t *testing.T) {
	store := seedStore(t)
	expireAt := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	if _, err := store.ExpireDueListings(context.Background(), expireAt); err != nil {
		t.Fatalf("expiring listings failed: %v", err)
	}

	uc := ListListingsUseCase{Listings: store}
	result, err := uc.Execute(context.Background(), ListListingsQuery{Status: "expired"})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected all listings expired, got %d", len(result.Items))
	}
}

func TestListListingsRejectsUnknownStatus(t *testing.T) {
	store := seedStore(t)
	uc := ListListingsUseCase{Listings: store}

	_, err := uc.Execute(context.Background(), ListListingsQuery{Status: "archived"})
	if !errors.Is(err, domainerrors.ErrInvalidStatusFilter) {
		t.Fatalf("expected ErrInvalidStatusFilter, got %v", err)
	}
}

func TestGetListingUnknownID(t *testing.T) {
	store := seedStore(t)
	uc := GetListingUseCase{Listings: store}

	_, err := uc.Execute(context.Background(), GetListingQuery{ListingID: "missing"})
	if !errors.Is(err, domainerrors.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}
