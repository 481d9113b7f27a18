package queries

import (
	"context"
	"log/slog"
	"strings"

	"relist/contexts/marketplace/bluebook-service/domain/entities"
	"relist/contexts/marketplace/bluebook-service/ports"
)

type QueryEntriesQuery struct {
	Brand       string
	Model       string
	QualityTier string
	Category    string
}

type QueryEntriesUseCase struct {
	Entries ports.ReferenceRepository
	Logger  *slog.Logger
}

type QueryEntriesResult struct {
	Items []entities.ReferenceEntry
}

func (uc QueryEntriesUseCase) Execute(ctx context.Context, query QueryEntriesQuery) (QueryEntriesResult, error) {
	items, err := uc.Entries.QueryEntries(ctx, ports.EntryFilter{
		Brand:       strings.TrimSpace(query.Brand),
		Model:       strings.TrimSpace(query.Model),
		QualityTier: strings.TrimSpace(query.QualityTier),
		Category:    strings.TrimSpace(query.Category),
	})
	if err != nil {
		return QueryEntriesResult{}, err
	}
	return QueryEntriesResult{Items: items}, nil
}
