package queries

import (
	"context"
	"log/slog"
	"strings"

	"relist/contexts/marketplace/listing-service/domain/entities"
	domainerrors "relist/contexts/marketplace/listing-service/domain/errors"
	"relist/contexts/marketplace/listing-service/ports"
)

type GetListingQuery struct {
	ListingID string
}

type GetListingUseCase struct {
	Listings ports.ListingRepository
	Logger   *slog.Logger
}

type GetListingResult struct {
	Listing entities.Listing
}

func (uc GetListingUseCase) Execute(ctx context.Context, query GetListingQuery) (GetListingResult, error) {
	listingID := strings.TrimSpace(query.ListingID)
	if listingID == "" {
		return GetListingResult{}, domainerrors.ErrListingNotFound
	}
	listing, err := uc.Listings.GetListing(ctx, listingID)
	if err != nil {
		return GetListingResult{}, err
	}
	return GetListingResult{Listing: listing}, nil
}
