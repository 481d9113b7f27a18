package queries

import (
	"context"
	"log/slog"
	"math"
	"strings"

	application "relist/contexts/marketplace/bluebook-service/application"
	"relist/contexts/marketplace/bluebook-service/ports"
)

type SuggestedPriceQuery struct {
	ListingID string
}

type SuggestedPriceUseCase struct {
	Entries  ports.ReferenceRepository
	Listings ports.ListingSource
	Logger   *slog.Logger
}

type SuggestedPriceResult struct {
	ListingID       string
	SuggestedPrice  float64
	ComparableCount int
}

// Execute averages BasePriceCents across the comparable set. Absent listing
// fields are wildcards so partial data still produces an estimate; with no
// comparables the listing's own price is returned unchanged rather than a
// meaningless zero.
func (uc SuggestedPriceUseCase) Execute(ctx context.Context, query SuggestedPriceQuery) (SuggestedPriceResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	listing, err := uc.Listings.GetListingSnapshot(ctx, strings.TrimSpace(query.ListingID))
	if err != nil {
		return SuggestedPriceResult{}, err
	}

	comparables, err := uc.Entries.ListComparables(ctx, ports.ComparableFilter{
		Brand:    listing.Brand,
		Model:    listing.Model,
		Category: listing.Category,
	})
	if err != nil {
		return SuggestedPriceResult{}, err
	}

	if len(comparables) == 0 {
		return SuggestedPriceResult{
			ListingID:      listing.ListingID,
			SuggestedPrice: listing.Price,
		}, nil
	}

	var sum int64
	for _, entry := range comparables {
		sum += entry.BasePriceCents
	}
	suggested := math.Round(float64(sum) / float64(len(comparables)))

	logger.Info("suggested price computed",
		"event", "bluebook_suggested_price",
		"module", "marketplace/bluebook-service",
		"layer", "application",
		"listing_id", listing.ListingID,
		"comparable_count", len(comparables),
		"suggested_price", suggested,
	)
	return SuggestedPriceResult{
		ListingID:       listing.ListingID,
		SuggestedPrice:  suggested,
		ComparableCount: len(comparables),
	}, nil
}
