package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "relist/contexts/marketplace/listing-service/application"
	"relist/contexts/marketplace/listing-service/application/commands"
	"relist/contexts/marketplace/listing-service/application/queries"
	"relist/contexts/marketplace/listing-service/domain/entities"
	"relist/contexts/marketplace/listing-service/ports"
	httptransport "relist/contexts/marketplace/listing-service/transport/http"
)

type Handler struct {
	CreateListing    commands.CreateListingUseCase
	RenewListing     commands.RenewListingUseCase
	SweepExpirations commands.SweepExpirationsUseCase
	GetListing       queries.GetListingUseCase
	ListListings     queries.ListListingsUseCase
	Logger           *slog.Logger
}

// CreateListingHandler godoc
// @Summary Create a listing
// @Description Creates a listing with a 14-day validity window.
// @Tags listings
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Authenticated seller id"
// @Param request body httptransport.CreateListingRequest true "Listing payload"
// @Success 200 {object} httptransport.CreateListingResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/items [post]
func (h Handler) CreateListingHandler(
	ctx context.Context,
	sellerID string,
	req httptransport.CreateListingRequest,
) (httptransport.CreateListingResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create listing request received",
		"event", "http_create_listing_received",
		"module", "marketplace/listing-service",
		"layer", "transport",
		"seller_id", sellerID,
	)

	result, err := h.CreateListing.Execute(ctx, commands.CreateListingCommand{
		SellerID:       sellerID,
		Title:          req.Title,
		Description:    req.Description,
		Brand:          req.Brand,
		Model:          req.Model,
		Category:       req.Category,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		ShippingCost:   req.ShippingCost,
		ShippingMethod: req.ShippingMethod,
	})
	if err != nil {
		return httptransport.CreateListingResponse{}, err
	}
	return httptransport.CreateListingResponse{
		Item:        mapListing(result.Listing),
		PriceAdvice: mapAdvice(result.Advice),
	}, nil
}

// RenewListingHandler godoc
// @Summary Renew a listing
// @Description Restarts the validity window; requires a change to price, image, or shipping cost.
// @Tags listings
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Authenticated seller id"
// @Param listing_id path string true "Listing id"
// @Param request body httptransport.RenewListingRequest true "Renewal change set"
// @Success 200 {object} httptransport.RenewListingResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/items/{listing_id}/renew [post]
func (h Handler) RenewListingHandler(
	ctx context.Context,
	actorID string,
	listingID string,
	req httptransport.RenewListingRequest,
) (httptransport.RenewListingResponse, error) {
	result, err := h.RenewListing.Execute(ctx, commands.RenewListingCommand{
		ListingID: listingID,
		ActorID:   actorID,
		Changes: entities.FieldChanges{
			Price:        req.Price,
			ImageURL:     req.ImageURL,
			ShippingCost: req.ShippingCost,
		},
	})
	if err != nil {
		return httptransport.RenewListingResponse{}, err
	}
	return httptransport.RenewListingResponse{
		Item:        mapListing(result.Listing),
		PriceAdvice: mapAdvice(result.Advice),
	}, nil
}

// SweepExpirationsHandler godoc
// @Summary Expire due listings
// @Description Transitions listed items past their expiry to expired; idempotent.
// @Tags listings
// @Produce json
// @Success 200 {object} httptransport.SweepExpirationsResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/expire-check [post]
func (h Handler) SweepExpirationsHandler(ctx context.Context) (httptransport.SweepExpirationsResponse, error) {
	result, err := h.SweepExpirations.Execute(ctx)
	if err != nil {
		return httptransport.SweepExpirationsResponse{}, err
	}
	return httptransport.SweepExpirationsResponse{Updated: result.ExpiredCount}, nil
}

// GetListingHandler godoc
// @Summary Get listing details
// @Description Returns one listing by id.
// @Tags listings
// @Produce json
// @Param listing_id path string true "Listing id"
// @Success 200 {object} httptransport.GetListingResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/items/{listing_id} [get]
func (h Handler) GetListingHandler(ctx context.Context, listingID string) (httptransport.GetListingResponse, error) {
	result, err := h.GetListing.Execute(ctx, queries.GetListingQuery{ListingID: listingID})
	if err != nil {
		return httptransport.GetListingResponse{}, err
	}
	return httptransport.GetListingResponse{Item: mapListing(result.Listing)}, nil
}

// ListListingsHandler godoc
// @Summary List listings
// @Description Returns listings newest first, optionally filtered by status.
// @Tags listings
// @Produce json
// @Param status query string false "Status filter: listed or expired"
// @Param seller_id query string false "Seller filter"
// @Success 200 {object} httptransport.ListListingsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/items [get]
func (h Handler) ListListingsHandler(
	ctx context.Context,
	status string,
	sellerID string,
) (httptransport.ListListingsResponse, error) {
	result, err := h.ListListings.Execute(ctx, queries.ListListingsQuery{
		Status:   status,
		SellerID: sellerID,
	})
	if err != nil {
		return httptransport.ListListingsResponse{}, err
	}
	return httptransport.ListListingsResponse{Items: mapListings(result.Items)}, nil
}

func mapListings(items []entities.Listing) []httptransport.ListingDTO {
	mapped := make([]httptransport.ListingDTO, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, mapListing(item))
	}
	return mapped
}

func mapListing(item entities.Listing) httptransport.ListingDTO {
	return httptransport.ListingDTO{
		ListingID:      item.ListingID,
		SellerID:       item.SellerID,
		Title:          item.Title,
		Description:    item.Description,
		Brand:          item.Brand,
		Model:          item.Model,
		Category:       item.Category,
		Price:          item.Price,
		ImageURL:       item.ImageURL,
		ShippingCost:   item.ShippingCost,
		ShippingMethod: item.ShippingMethod,
		Status:         string(item.Status),
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt:      item.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

func mapAdvice(advice ports.PriceAdvice) *httptransport.PriceAdviceDTO {
	if !advice.Found || !advice.Flagged {
		return nil
	}
	return &httptransport.PriceAdviceDTO{
		Flagged:      advice.Flagged,
		PercentOver:  advice.PercentOver,
		AveragePrice: advice.AveragePrice,
	}
}
