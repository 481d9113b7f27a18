package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	bluebookservice "relist/contexts/marketplace/bluebook-service"
	bluebookpostgres "relist/contexts/marketplace/bluebook-service/adapters/postgres"
	listingservice "relist/contexts/marketplace/listing-service"
	listingpostgres "relist/contexts/marketplace/listing-service/adapters/postgres"
	"relist/contexts/marketplace/listing-service/application/commands"
	"relist/contexts/marketplace/listing-service/application/workers"
	"relist/internal/platform/config"
	"relist/internal/platform/db"
	"relist/internal/platform/httpserver"
	"relist/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	sweeper      workers.ExpirationSweeper
	outboxRelay  workers.OutboxRelay
	consumer     workers.ListingEventsConsumer
	sweepEnabled bool
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	listingRepo := listingpostgres.NewRepository(pg.DB, logger)
	bluebookRepo := bluebookpostgres.NewRepository(pg.DB, logger)

	bluebookModule := bluebookservice.NewModule(bluebookservice.Dependencies{
		Entries:  bluebookRepo,
		Listings: listingSource{listings: listingRepo},
		Logger:   logger,
	})

	listingModule := listingservice.NewModule(listingservice.Dependencies{
		Listings:    listingRepo,
		Outbox:      listingRepo,
		Advisor:     priceAdvisor{flagOverpriced: bluebookModule.FlagOverpriced},
		Clock:       listingpostgres.SystemClock{},
		IDGenerator: listingpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(listingModule, bluebookModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus, err := messaging.NewBus(nil, logger)
	if err != nil {
		return nil, err
	}

	repo := listingpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		sweeper: workers.ExpirationSweeper{
			Sweep: commands.SweepExpirationsUseCase{
				Listings:    repo,
				Outbox:      repo,
				Clock:       listingpostgres.SystemClock{},
				IDGenerator: listingpostgres.UUIDGenerator{},
				Logger:      logger,
			},
			Logger: logger,
		},
		outboxRelay: workers.OutboxRelay{
			Outbox:    repo,
			Publisher: bus,
			Clock:     listingpostgres.SystemClock{},
			Topic:     "marketplace.listings",
			BatchSize: 100,
			Logger:    logger,
		},
		consumer: workers.ListingEventsConsumer{
			Subscriber: bus,
			Logger:     logger,
		},
		sweepEnabled: cfg.EnableExpirationSweeper,
		relayEnabled: cfg.EnableOutboxRelay,
		pollInterval: cfg.SweepInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.consumer.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"sweep_enabled", w.sweepEnabled,
		"relay_enabled", w.relayEnabled,
	)

	for {
		if w.sweepEnabled {
			if err := w.sweeper.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
