package bluebookservice

import (
	"log/slog"

	httpadapter "relist/contexts/marketplace/bluebook-service/adapters/http"
	"relist/contexts/marketplace/bluebook-service/adapters/memory"
	"relist/contexts/marketplace/bluebook-service/application/queries"
	"relist/contexts/marketplace/bluebook-service/domain/entities"
	"relist/contexts/marketplace/bluebook-service/ports"
)

// Module is the composition surface for the reference pricing engine.
type Module struct {
	Handler        httpadapter.Handler
	FlagOverpriced queries.FlagOverpricedUseCase
	Store          *memory.Store
}

type Dependencies struct {
	Entries  ports.ReferenceRepository
	Listings ports.ListingSource
	Logger   *slog.Logger
}

// NewModule wires the pricing use-cases against explicit ports.
func NewModule(deps Dependencies) Module {
	lookupEntry := queries.LookupEntryUseCase{
		Entries: deps.Entries,
		Logger:  deps.Logger,
	}
	flagOverpriced := queries.FlagOverpricedUseCase{
		Entries: deps.Entries,
		Logger:  deps.Logger,
	}
	queryEntries := queries.QueryEntriesUseCase{
		Entries: deps.Entries,
		Logger:  deps.Logger,
	}
	suggestedPrice := queries.SuggestedPriceUseCase{
		Entries:  deps.Entries,
		Listings: deps.Listings,
		Logger:   deps.Logger,
	}

	handler := httpadapter.Handler{
		LookupEntry:    lookupEntry,
		FlagOverpriced: flagOverpriced,
		QueryEntries:   queryEntries,
		SuggestedPrice: suggestedPrice,
		Logger:         deps.Logger,
	}

	return Module{
		Handler:        handler,
		FlagOverpriced: flagOverpriced,
	}
}

// NewInMemoryModule wires the pricing use cases against a seeded in-memory
// reference set.
func NewInMemoryModule(
	seedEntries []entities.ReferenceEntry,
	listings ports.ListingSource,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seedEntries, logger)
	module := NewModule(Dependencies{
		Entries:  store,
		Listings: listings,
		Logger:   logger,
	})
	module.Store = store
	return module
}
