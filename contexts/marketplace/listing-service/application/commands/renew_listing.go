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

type RenewListingCommand struct {
	ListingID string
	ActorID   string
	Changes   entities.FieldChanges
}

type RenewListingUseCase struct {
	Listings    ports.ListingRepository
	Advisor     ports.PriceAdvisor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type RenewListingResult struct {
	Listing entities.Listing
	Advice  ports.PriceAdvice
}

func (uc RenewListingUseCase) Execute(ctx context.Context, cmd RenewListingCommand) (RenewListingResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	listing, err := uc.Listings.GetListing(ctx, strings.TrimSpace(cmd.ListingID))
	if err != nil {
		return RenewListingResult{}, err
	}
	if listing.SellerID != strings.TrimSpace(cmd.ActorID) {
		return RenewListingResult{}, domainerrors.ErrNotListingOwner
	}
	if cmd.Changes.Price != nil && *cmd.Changes.Price <= 0 {
		return RenewListingResult{}, domainerrors.ErrInvalidListingInput
	}
	if !listing.HasQualifyingChange(cmd.Changes) {
		return RenewListingResult{}, domainerrors.ErrNoQualifyingChange
	}

	now := uc.Clock.Now().UTC()
	previousStatus := listing.Status
	renewed := listing.Renew(cmd.Changes, now)

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return RenewListingResult{}, err
	}
	envelope, err := newListingEnvelope(
		eventID,
		EventTypeListingRenewed,
		renewed.ListingID,
		now,
		map[string]any{
			"listing_id":  renewed.ListingID,
			"seller_id":   renewed.SellerID,
			"from_status": string(previousStatus),
			"expires_at":  renewed.ExpiresAt,
		},
	)
	if err != nil {
		return RenewListingResult{}, err
	}

	// The window reset and the renewed event commit together; a failed write
	// leaves the old expiry in place so the seller can safely retry.
	if err := uc.Listings.UpdateListingWithOutbox(ctx, renewed, envelope); err != nil {
		return RenewListingResult{}, err
	}

	result := RenewListingResult{Listing: renewed}
	result.Advice = uc.consultAdvisor(ctx, logger, renewed)

	logger.Info("listing renewed",
		"event", "listing_renewed",
		"module", "marketplace/listing-service",
		"layer", "application",
		"listing_id", renewed.ListingID,
		"seller_id", renewed.SellerID,
		"from_status", string(previousStatus),
		"expires_at", renewed.ExpiresAt,
	)
	return result, nil
}

func (uc RenewListingUseCase) consultAdvisor(
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
		logger.Warn("renewed listing priced above reference average",
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
