package ports

import (
	"context"

	"relist/contexts/marketplace/bluebook-service/domain/entities"
)

// EntryFilter defines read-side filtering over the reference set.
// Brand and Model are case-insensitive partial matches; QualityTier and
// Category are exact.
type EntryFilter struct {
	Brand       string
	Model       string
	QualityTier string
	Category    string
}

// ComparableFilter selects the comparable set for price suggestion.
// Empty fields are wildcards.
type ComparableFilter struct {
	Brand    string
	Model    string
	Category string
}

// ReferenceRepository encapsulates read-only access to Blue Book entries.
type ReferenceRepository interface {
	// GetEntryByTitle matches the title case-insensitively. Absence is a
	// valid empty result, not an error.
	GetEntryByTitle(ctx context.Context, title string) (entities.ReferenceEntry, bool, error)
	// QueryEntries returns matches ordered by popularity score descending,
	// stable on insertion order for ties.
	QueryEntries(ctx context.Context, filter EntryFilter) ([]entities.ReferenceEntry, error)
	ListComparables(ctx context.Context, filter ComparableFilter) ([]entities.ReferenceEntry, error)
}

// ListingSnapshot is the slice of a listing the pricing engine needs.
type ListingSnapshot struct {
	ListingID string
	Brand     string
	Model     string
	Category  string
	Price     float64
}

// ListingSource resolves listings owned by the lifecycle manager. The
// pricing engine depends on this contract only, never on that service.
type ListingSource interface {
	GetListingSnapshot(ctx context.Context, listingID string) (ListingSnapshot, error)
}
