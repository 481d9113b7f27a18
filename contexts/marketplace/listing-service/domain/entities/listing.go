package entities

import (
	"strings"
	"time"

	domainerrors "relist/contexts/marketplace/listing-service/domain/errors"
)

type ListingStatus string

const (
	ListingStatusListed  ListingStatus = "listed"
	ListingStatusExpired ListingStatus = "expired"
)

// ValidityWindow is how long a listing stays live after creation or renewal.
const ValidityWindow = 14 * 24 * time.Hour

type Listing struct {
	ListingID      string
	SellerID       string
	Title          string
	Description    string
	Brand          string
	Model          string
	Category       string
	Price          float64
	ImageURL       string
	ShippingCost   *float64
	ShippingMethod string
	Status         ListingStatus
	CreatedAt      time.Time
	ExpiresAt      time.Time
	UpdatedAt      time.Time
}

func NewListing(
	listingID string,
	sellerID string,
	title string,
	description string,
	brand string,
	model string,
	category string,
	price float64,
	imageURL string,
	shippingCost *float64,
	shippingMethod string,
	createdAt time.Time,
) (Listing, error) {
	if strings.TrimSpace(listingID) == "" || strings.TrimSpace(sellerID) == "" {
		return Listing{}, domainerrors.ErrInvalidListingInput
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(category) == "" {
		return Listing{}, domainerrors.ErrInvalidListingInput
	}
	if price <= 0 {
		return Listing{}, domainerrors.ErrInvalidListingInput
	}

	created := createdAt.UTC()
	return Listing{
		ListingID:      strings.TrimSpace(listingID),
		SellerID:       strings.TrimSpace(sellerID),
		Title:          strings.TrimSpace(title),
		Description:    strings.TrimSpace(description),
		Brand:          strings.TrimSpace(brand),
		Model:          strings.TrimSpace(model),
		Category:       strings.TrimSpace(category),
		Price:          price,
		ImageURL:       strings.TrimSpace(imageURL),
		ShippingCost:   copyOptionalFloat(shippingCost),
		ShippingMethod: strings.TrimSpace(shippingMethod),
		Status:         ListingStatusListed,
		CreatedAt:      created,
		ExpiresAt:      created.Add(ValidityWindow),
		UpdatedAt:      created,
	}, nil
}

// FieldChanges carries the renewal update set. A nil field means the caller
// did not mention it; a non-nil field is an explicit new value.
type FieldChanges struct {
	Price        *float64
	ImageURL     *string
	ShippingCost *float64
}

// HasQualifyingChange reports whether at least one of price, image, or
// shipping cost differs from the stored values. Renewal is gated on this.
func (l Listing) HasQualifyingChange(changes FieldChanges) bool {
	if changes.Price != nil && *changes.Price != l.Price {
		return true
	}
	if changes.ImageURL != nil && strings.TrimSpace(*changes.ImageURL) != l.ImageURL {
		return true
	}
	if changes.ShippingCost != nil {
		if l.ShippingCost == nil || *changes.ShippingCost != *l.ShippingCost {
			return true
		}
	}
	return false
}

// Renew applies the change set and restarts the validity window. Fields not
// supplied retain their prior values; status is forced back to listed.
func (l Listing) Renew(changes FieldChanges, now time.Time) Listing {
	renewed := l
	if changes.Price != nil {
		renewed.Price = *changes.Price
	}
	if changes.ImageURL != nil {
		renewed.ImageURL = strings.TrimSpace(*changes.ImageURL)
	}
	if changes.ShippingCost != nil {
		renewed.ShippingCost = copyOptionalFloat(changes.ShippingCost)
	}
	timestamp := now.UTC()
	renewed.Status = ListingStatusListed
	renewed.CreatedAt = timestamp
	renewed.ExpiresAt = timestamp.Add(ValidityWindow)
	renewed.UpdatedAt = timestamp
	return renewed
}

// IsDue reports whether a listed item has crossed its expiry timestamp.
func (l Listing) IsDue(now time.Time) bool {
	return l.Status == ListingStatusListed && !now.UTC().Before(l.ExpiresAt)
}

func IsSupportedStatus(value ListingStatus) bool {
	switch value {
	case ListingStatusListed, ListingStatusExpired:
		return true
	default:
		return false
	}
}

func copyOptionalFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
