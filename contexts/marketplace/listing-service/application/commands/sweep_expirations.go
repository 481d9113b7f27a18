package commands

import (
	"context"
	"log/slog"

	application "relist/contexts/marketplace/listing-service/application"
	"relist/contexts/marketplace/listing-service/ports"
)

// SweepExpirationsUseCase runs the bulk listed→expired transition. It is
// invoked by the periodic worker and by the expire-check endpoint; both paths
// are idempotent because only due listed rows are touched.
type SweepExpirationsUseCase struct {
	Listings    ports.ListingRepository
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type SweepExpirationsResult struct {
	ExpiredCount int
}

func (uc SweepExpirationsUseCase) Execute(ctx context.Context) (SweepExpirationsResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	expired, err := uc.Listings.ExpireDueListings(ctx, now)
	if err != nil {
		return SweepExpirationsResult{}, err
	}

	if expired > 0 && uc.Outbox != nil {
		eventID, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return SweepExpirationsResult{}, err
		}
		envelope, err := newListingEnvelope(
			eventID,
			EventTypeSweepCompleted,
			"sweep",
			now,
			map[string]any{
				"expired_count": expired,
			},
		)
		if err != nil {
			return SweepExpirationsResult{}, err
		}
		if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
			return SweepExpirationsResult{}, err
		}
	}

	if expired > 0 {
		logger.Info("expiration sweep completed",
			"event", "listing_sweep_completed",
			"module", "marketplace/listing-service",
			"layer", "application",
			"expired_count", expired,
		)
	}
	return SweepExpirationsResult{ExpiredCount: expired}, nil
}
