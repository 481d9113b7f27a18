package httpadapter

import (
	"context"
	"log/slog"

	"relist/contexts/marketplace/bluebook-service/application/queries"
	"relist/contexts/marketplace/bluebook-service/domain/entities"
	httptransport "relist/contexts/marketplace/bluebook-service/transport/http"
)

type Handler struct {
	LookupEntry    queries.LookupEntryUseCase
	FlagOverpriced queries.FlagOverpricedUseCase
	QueryEntries   queries.QueryEntriesUseCase
	SuggestedPrice queries.SuggestedPriceUseCase
	Logger         *slog.Logger
}

// QueryEntriesHandler godoc
// @Summary Query Blue Book entries
// @Description Filters the reference set; brand/model match partially and case-insensitively, ordered by popularity.
// @Tags bluebook
// @Produce json
// @Param brand query string false "Brand partial match"
// @Param model query string false "Model partial match"
// @Param qualityTier query string false "Quality tier exact match"
// @Param category query string false "Category exact match"
// @Success 200 {object} httptransport.QueryEntriesResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/bluebook [get]
func (h Handler) QueryEntriesHandler(
	ctx context.Context,
	brand string,
	model string,
	qualityTier string,
	category string,
) (httptransport.QueryEntriesResponse, error) {
	result, err := h.QueryEntries.Execute(ctx, queries.QueryEntriesQuery{
		Brand:       brand,
		Model:       model,
		QualityTier: qualityTier,
		Category:    category,
	})
	if err != nil {
		return httptransport.QueryEntriesResponse{}, err
	}
	return httptransport.QueryEntriesResponse{Items: mapEntries(result.Items)}, nil
}

// LookupEntryHandler godoc
// @Summary Look up a Blue Book entry by title
// @Description Case-insensitive title match; an unknown title is a valid empty result.
// @Tags bluebook
// @Produce json
// @Param title query string true "Entry title"
// @Success 200 {object} httptransport.LookupEntryResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/bluebook/lookup [get]
func (h Handler) LookupEntryHandler(ctx context.Context, title string) (httptransport.LookupEntryResponse, error) {
	result, err := h.LookupEntry.Execute(ctx, queries.LookupEntryQuery{Title: title})
	if err != nil {
		return httptransport.LookupEntryResponse{}, err
	}
	if !result.Found {
		return httptransport.LookupEntryResponse{Found: false}, nil
	}
	entry := mapEntry(result.Entry)
	return httptransport.LookupEntryResponse{Found: true, Entry: &entry}, nil
}

// PriceCheckHandler godoc
// @Summary Check a proposed price against the Blue Book average
// @Description Advisory only: flags prices more than 25% above the reference average.
// @Tags bluebook
// @Produce json
// @Param title query string true "Entry title"
// @Param price query number true "Proposed price"
// @Success 200 {object} httptransport.PriceCheckResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/bluebook/price-check [get]
func (h Handler) PriceCheckHandler(
	ctx context.Context,
	title string,
	proposedPrice float64,
) (httptransport.PriceCheckResponse, error) {
	result, err := h.FlagOverpriced.Execute(ctx, queries.FlagOverpricedQuery{
		Title:         title,
		ProposedPrice: proposedPrice,
	})
	if err != nil {
		return httptransport.PriceCheckResponse{}, err
	}
	return httptransport.PriceCheckResponse{
		Found:        result.Found,
		Flagged:      result.Flagged,
		PercentOver:  result.PercentOver,
		AveragePrice: result.AveragePrice,
	}, nil
}

// SuggestedPriceHandler godoc
// @Summary Suggest a price for a listing
// @Description Mean of comparable reference prices; falls back to the listing's own price without comparables.
// @Tags bluebook
// @Produce json
// @Param listing_id path string true "Listing id"
// @Success 200 {object} httptransport.SuggestedPriceResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/bluebook/suggested-price/{listing_id} [get]
func (h Handler) SuggestedPriceHandler(ctx context.Context, listingID string) (httptransport.SuggestedPriceResponse, error) {
	result, err := h.SuggestedPrice.Execute(ctx, queries.SuggestedPriceQuery{ListingID: listingID})
	if err != nil {
		return httptransport.SuggestedPriceResponse{}, err
	}
	return httptransport.SuggestedPriceResponse{
		ListingID:       result.ListingID,
		SuggestedPrice:  result.SuggestedPrice,
		ComparableCount: result.ComparableCount,
	}, nil
}

func mapEntries(items []entities.ReferenceEntry) []httptransport.ReferenceEntryDTO {
	mapped := make([]httptransport.ReferenceEntryDTO, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, mapEntry(item))
	}
	return mapped
}

func mapEntry(item entities.ReferenceEntry) httptransport.ReferenceEntryDTO {
	return httptransport.ReferenceEntryDTO{
		EntryID:         item.EntryID,
		Title:           item.Title,
		Brand:           item.Brand,
		Model:           item.Model,
		Category:        item.Category,
		QualityTier:     item.QualityTier,
		AvgPrice:        item.AvgPrice,
		BasePriceCents:  item.BasePriceCents,
		PopularityScore: item.PopularityScore,
	}
}
