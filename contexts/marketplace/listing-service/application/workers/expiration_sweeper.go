package workers

import (
	"context"
	"log/slog"

	application "relist/contexts/marketplace/listing-service/application"
	"relist/contexts/marketplace/listing-service/application/commands"
)

// ExpirationSweeper drives the periodic listed→expired transition.
type ExpirationSweeper struct {
	Sweep  commands.SweepExpirationsUseCase
	Logger *slog.Logger
}

func (s ExpirationSweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(s.Logger)

	if _, err := s.Sweep.Execute(ctx); err != nil {
		logger.Error("expiration sweep failed",
			"event", "listing_sweep_failed",
			"module", "marketplace/listing-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	return nil
}
