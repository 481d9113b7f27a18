package commands

import (
	"context"
	"log/slog"
	"strings"

	application "relist/contexts/marketplace/listing-service/application"
	"relist/contexts/marketplace/listing-service/domain/entities"
	domainerrors "relist/contexts/marketplace/listing-service/domain/errors"
	"relist/contexts/marketplace/listing-service/ports"
)

type CreateListingCommand struct {
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
}

type CreateListingUseCase struct {
	Listings    ports.ListingRepository
	Advisor     ports.PriceAdvisor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type CreateListingResult struct {
	Listing entities.Listing
	Advice  ports.PriceAdvice
}

func (uc CreateListingUseCase) Execute(ctx context.Context, cmd CreateListingCommand) (CreateListingResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.SellerID) == "" {
		return CreateListingResult{}, domainerrors.ErrInvalidListingInput
	}

	now := uc.Clock.Now().UTC()
	listingID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreateListingResult{}, err
	}

	listing, err := entities.NewListing(
		listingID,
		cmd.SellerID,
		cmd.Title,
		cmd.Description,
		cmd.Brand,
		cmd.Model,
		cmd.Category,
		cmd.Price,
		cmd.ImageURL,
		cmd.ShippingCost,
		cmd.ShippingMethod,
		now,
	)
	if err != nil {
		return CreateListingResult{}, err
	}

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreateListingResult{}, err
	}
	envelope, err := newListingEnvelope(
		eventID,
		EventTypeListingCreated,
		listing.ListingID,
		now,
		map[string]any{
			"listing_id": listing.ListingID,
			"seller_id":  listing.SellerID,
			"status":     string(listing.Status),
			"expires_at": listing.ExpiresAt,
		},
	)
	if err != nil {
		return CreateListingResult{}, err
	}

	// Listing and event land in one transaction so a retry after failure
	// never observes a listing without its created event.
	if err := uc.Listings.CreateListingWithOutbox(ctx, listing, envelope); err != nil {
		return CreateListingResult{}, err
	}

	result := CreateListingResult{Listing: listing}
	result.Advice = uc.consultAdvisor(ctx, logger, listing)

	logger.Info("listing created",
		"event", "listing_created",
		"module", "marketplace/listing-service",
		"layer", "application",
		"listing_id", listing.ListingID,
		"seller_id", listing.SellerID,
		"expires_at", listing.ExpiresAt,
	)
	return result, nil
}

// consultAdvisor is advisory only: failures and overprice flags are logged
// and surfaced, never turned into command errors.
func (uc CreateListingUseCase) consultAdvisor(
	ctx context.Context,
	logger *slog.Logger,
	listing entities.Listing,
) ports.PriceAdvice {
	if uc.Advisor == nil {
		return ports.PriceAdvice{}
	}
	advice, err := uc.Advisor.CheckPrice(ctx, listing.Title, listing.Price)
	if err != nil {
		logger.Warn("price advisory lookup failed",
			"event", "listing_price_advice_failed",
			"module", "marketplace/listing-service",
			"layer", "application",
			"listing_id", listing.ListingID,
			"error", err.Error(),
		)
		return ports.PriceAdvice{}
	}
	if advice.Flagged {
		logger.Warn("listing priced above reference average",
			"event", "listing_overpriced",
			"module", "marketplace/listing-service",
			"layer", "application",
			"listing_id", listing.ListingID,
			"percent_over", advice.PercentOver,
			"average_price", advice.AveragePrice,
		)
	}
	return advice
}
