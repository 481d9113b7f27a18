package listingservice

import (
	"log/slog"

	httpadapter "relist/contexts/marketplace/listing-service/adapters/http"
	"relist/contexts/marketplace/listing-service/adapters/memory"
	"relist/contexts/marketplace/listing-service/application/commands"
	"relist/contexts/marketplace/listing-service/application/queries"
	"relist/contexts/marketplace/listing-service/ports"
)

// Module is the composition surface for the listing lifecycle manager.
// Runtime wiring should consume Handler; Store is exposed for tests/inspection.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Listings    ports.ListingRepository
	Outbox      ports.OutboxWriter
	Advisor     ports.PriceAdvisor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the listing use-cases against explicit ports.
func NewModule(deps Dependencies) Module {
	createListing := commands.CreateListingUseCase{
		Listings:    deps.Listings,
		Advisor:     deps.Advisor,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	renewListing := commands.RenewListingUseCase{
		Listings:    deps.Listings,
		Advisor:     deps.Advisor,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	sweepExpirations := commands.SweepExpirationsUseCase{
		Listings:    deps.Listings,
		Outbox:      deps.Outbox,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	getListing := queries.GetListingUseCase{
		Listings: deps.Listings,
		Logger:   deps.Logger,
	}
	listListings := queries.ListListingsUseCase{
		Listings: deps.Listings,
		Logger:   deps.Logger,
	}

	handler := httpadapter.Handler{
		CreateListing:    createListing,
		RenewListing:     renewListing,
		SweepExpirations: sweepExpirations,
		GetListing:       getListing,
		ListListings:     listListings,
		Logger:           deps.Logger,
	}

	return Module{Handler: handler}
}

// NewInMemoryModule wires the listing use cases against in-memory adapters.
func NewInMemoryModule(advisor ports.PriceAdvisor, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Listings:    store,
		Outbox:      store,
		Advisor:     advisor,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
