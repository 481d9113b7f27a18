package queries

import (
	"context"
	"log/slog"
	"strings"

	"relist/contexts/marketplace/listing-service/domain/entities"
	domainerrors "relist/contexts/marketplace/listing-service/domain/errors"
	"relist/contexts/marketplace/listing-service/ports"
)

type ListListingsQuery struct {
	Status   string
	SellerID string
}

type ListListingsUseCase struct {
	Listings ports.ListingRepository
	Logger   *slog.Logger
}

type ListListingsResult struct {
	Items []entities.Listing
}

func (uc ListListingsUseCase) Execute(ctx context.Context, query ListListingsQuery) (ListListingsResult, error) {
	filter := ports.ListingFilter{
		SellerID: strings.TrimSpace(query.SellerID),
	}
	if raw := strings.TrimSpace(query.Status); raw != "" {
		status := entities.ListingStatus(raw)
		if !entities.IsSupportedStatus(status) {
			return ListListingsResult{}, domainerrors.ErrInvalidStatusFilter
		}
		filter.Status = status
	}

	items, err := uc.Listings.ListListings(ctx, filter)
	if err != nil {
		return ListListingsResult{}, err
	}
	return ListListingsResult{Items: items}, nil
}
