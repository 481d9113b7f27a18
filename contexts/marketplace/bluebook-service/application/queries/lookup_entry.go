package queries

import (
	"context"
	"log/slog"
	"strings"

	"relist/contexts/marketplace/bluebook-service/domain/entities"
	"relist/contexts/marketplace/bluebook-service/ports"
)

type LookupEntryQuery struct {
	Title string
}

type LookupEntryUseCase struct {
	Entries ports.ReferenceRepository
	Logger  *slog.Logger
}

// LookupEntryResult carries Found=false for unknown titles; absence is an
// expected outcome for unlisted items, not a failure.
type LookupEntryResult struct {
	Entry entities.ReferenceEntry
	Found bool
}

func (uc LookupEntryUseCase) Execute(ctx context.Context, query LookupEntryQuery) (LookupEntryResult, error) {
	title := strings.TrimSpace(query.Title)
	if title == "" {
		return LookupEntryResult{}, nil
	}
	entry, found, err := uc.Entries.GetEntryByTitle(ctx, title)
	if err != nil {
		return LookupEntryResult{}, err
	}
	return LookupEntryResult{Entry: entry, Found: found}, nil
}
