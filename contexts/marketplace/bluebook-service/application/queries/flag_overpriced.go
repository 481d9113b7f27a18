package queries

import (
	"context"
	"log/slog"
	"strings"

	application "relist/contexts/marketplace/bluebook-service/application"
	domainerrors "relist/contexts/marketplace/bluebook-service/domain/errors"
	"relist/contexts/marketplace/bluebook-service/ports"
)

type FlagOverpricedQuery struct {
	Title         string
	ProposedPrice float64
}

type FlagOverpricedUseCase struct {
	Entries ports.ReferenceRepository
	Logger  *slog.Logger
}

type FlagOverpricedResult struct {
	Found        bool
	Flagged      bool
	PercentOver  int
	AveragePrice float64
}

func (uc FlagOverpricedUseCase) Execute(ctx context.Context, query FlagOverpricedQuery) (FlagOverpricedResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if query.ProposedPrice <= 0 {
		return FlagOverpricedResult{}, domainerrors.ErrInvalidPrice
	}

	entry, found, err := uc.Entries.GetEntryByTitle(ctx, strings.TrimSpace(query.Title))
	if err != nil {
		return FlagOverpricedResult{}, err
	}
	if !found {
		return FlagOverpricedResult{}, nil
	}

	flagged, percent := entry.IsOverpriced(query.ProposedPrice)
	if flagged {
		logger.Info("proposed price flagged against reference average",
			"event", "bluebook_price_flagged",
			"module", "marketplace/bluebook-service",
			"layer", "application",
			"title", entry.Title,
			"percent_over", percent,
			"average_price", entry.AvgPrice,
		)
	}
	return FlagOverpricedResult{
		Found:        true,
		Flagged:      flagged,
		PercentOver:  percent,
		AveragePrice: entry.AvgPrice,
	}, nil
}
