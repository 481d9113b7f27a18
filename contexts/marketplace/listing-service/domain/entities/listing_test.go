package entities

import (
	"errors"
	"testing"
	"time"

	domainerrors "relist/contexts/marketplace/listing-service/domain/errors"
)

func mustListing(t *testing.T, createdAt time.Time) Listing {
	t.Helper()
	listing, err := NewListing(
		"listing-1", "seller-1", "Road Bike", "", "Giant", "TCR", "sports",
		420, "https://img.example/bike.jpg", nil, "courier", createdAt,
	)
	if err != nil {
		t.Fatalf("building listing failed: %v", err)
	}
	return listing
}

func TestNewListingValidation(t *testing.T) {
	createdAt := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		name     string
		title    string
		category string
		price    float64
	}{
		{"blank title", "  ", "sports", 420},
		{"blank category", "Road Bike", "", 420},
		{"zero price", "Road Bike", "sports", 0},
		{"negative price", "Road Bike", "sports", -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewListing(
				"listing-1", "seller-1", tc.title, "", "", "", tc.category,
				tc.price, "", nil, "", createdAt,
			)
			if !errors.Is(err, domainerrors.ErrInvalidListingInput) {
				t.Fatalf("expected ErrInvalidListingInput, got %v", err)
			}
		})
	}
}

func TestHasQualifyingChange(t *testing.T) {
	listing := mustListing(t, time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC))

	samePrice := listing.Price
	newPrice := listing.Price + 1
	sameImage := listing.ImageURL
	newImage := "https://img.example/other.jpg"
	shipping := 9.99

	if listing.HasQualifyingChange(FieldChanges{}) {
		t.Fatal("empty change set must not qualify")
	}
	if listing.HasQualifyingChange(FieldChanges{Price: &samePrice, ImageURL: &sameImage}) {
		t.Fatal("identical values must not qualify")
	}
	if !listing.HasQualifyingChange(FieldChanges{Price: &newPrice}) {
		t.Fatal("changed price must qualify")
	}
	if !listing.HasQualifyingChange(FieldChanges{ImageURL: &newImage}) {
		t.Fatal("changed image must qualify")
	}
	if !listing.HasQualifyingChange(FieldChanges{ShippingCost: &shipping}) {
		t.Fatal("adding shipping cost where none was set must qualify")
	}

	withShipping := listing
	withShipping.ShippingCost = &shipping
	sameShipping := shipping
	if withShipping.HasQualifyingChange(FieldChanges{ShippingCost: &sameShipping}) {
		t.Fatal("identical shipping cost must not qualify")
	}
}

func TestIsDueBoundary(t *testing.T) {
	createdAt := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	listing := mustListing(t, createdAt)

	if listing.IsDue(listing.ExpiresAt.Add(-time.Second)) {
		t.Fatal("listing must not be due before expires_at")
	}
	if !listing.IsDue(listing.ExpiresAt) {
		t.Fatal("listing must be due exactly at expires_at")
	}

	expired := listing
	expired.Status = ListingStatusExpired
	if expired.IsDue(listing.ExpiresAt.Add(time.Hour)) {
		t.Fatal("already expired listing must not be due again")
	}
}

func TestRenewKeepsUnmentionedFields(t *testing.T) {
	createdAt := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	listing := mustListing(t, createdAt)

	renewedAt := createdAt.Add(5 * 24 * time.Hour)
	newPrice := 399.0
	renewed := listing.Renew(FieldChanges{Price: &newPrice}, renewedAt)

	if renewed.Price != newPrice {
		t.Fatalf("expected price %v, got %v", newPrice, renewed.Price)
	}
	if renewed.ImageURL != listing.ImageURL {
		t.Fatalf("expected image to carry over, got %q", renewed.ImageURL)
	}
	if !renewed.ExpiresAt.Equal(renewedAt.Add(ValidityWindow)) {
		t.Fatalf("expected expires_at %v, got %v", renewedAt.Add(ValidityWindow), renewed.ExpiresAt)
	}
	if renewed.Status != ListingStatusListed {
		t.Fatalf("expected status listed, got %q", renewed.Status)
	}
}
