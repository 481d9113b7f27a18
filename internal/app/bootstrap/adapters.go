package bootstrap

import (
	"context"
	"errors"

	bluebookqueries "relist/contexts/marketplace/bluebook-service/application/queries"
	bluebookerrors "relist/contexts/marketplace/bluebook-service/domain/errors"
	bluebookports "relist/contexts/marketplace/bluebook-service/ports"
	listingerrors "relist/contexts/marketplace/listing-service/domain/errors"
	listingports "relist/contexts/marketplace/listing-service/ports"
)

// priceAdvisor adapts the pricing engine into the lifecycle manager's
// advisory port. Keeps the contexts decoupled at the type level.
type priceAdvisor struct {
	flagOverpriced bluebookqueries.FlagOverpricedUseCase
}

func (a priceAdvisor) CheckPrice(
	ctx context.Context,
	title string,
	price float64,
) (listingports.PriceAdvice, error) {
	result, err := a.flagOverpriced.Execute(ctx, bluebookqueries.FlagOverpricedQuery{
		Title:         title,
		ProposedPrice: price,
	})
	if err != nil {
		return listingports.PriceAdvice{}, err
	}
	return listingports.PriceAdvice{
		Found:        result.Found,
		Flagged:      result.Flagged,
		PercentOver:  result.PercentOver,
		AveragePrice: result.AveragePrice,
	}, nil
}

// listingSource adapts the lifecycle repository into the pricing engine's
// read-only snapshot port.
type listingSource struct {
	listings listingports.ListingRepository
}

func (s listingSource) GetListingSnapshot(
	ctx context.Context,
	listingID string,
) (bluebookports.ListingSnapshot, error) {
	listing, err := s.listings.GetListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, listingerrors.ErrListingNotFound) {
			return bluebookports.ListingSnapshot{}, bluebookerrors.ErrListingNotFound
		}
		return bluebookports.ListingSnapshot{}, err
	}
	return bluebookports.ListingSnapshot{
		ListingID: listing.ListingID,
		Brand:     listing.Brand,
		Model:     listing.Model,
		Category:  listing.Category,
		Price:     listing.Price,
	}, nil
}
