package memory

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	application "relist/contexts/marketplace/bluebook-service/application"
	"relist/contexts/marketplace/bluebook-service/domain/entities"
	"relist/contexts/marketplace/bluebook-service/ports"
)

// Store is an in-memory reference set for local runtime and tests. Entries
// are kept in insertion order so tie-breaking stays stable.
type Store struct {
	mu      sync.RWMutex
	entries []entities.ReferenceEntry
	logger  *slog.Logger
}

// NewStore seeds the reference set. Entries are read-only afterwards.
func NewStore(seedEntries []entities.ReferenceEntry, logger *slog.Logger) *Store {
	return &Store{
		entries: append([]entities.ReferenceEntry(nil), seedEntries...),
		logger:  application.ResolveLogger(logger),
	}
}

func (s *Store) GetEntryByTitle(_ context.Context, title string) (entities.ReferenceEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(title))
	for _, entry := range s.entries {
		if strings.ToLower(entry.Title) == needle {
			return entry, true, nil
		}
	}
	return entities.ReferenceEntry{}, false, nil
}

func (s *Store) QueryEntries(_ context.Context, filter ports.EntryFilter) ([]entities.ReferenceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.ReferenceEntry, 0)
	for _, entry := range s.entries {
		if !containsFold(entry.Brand, filter.Brand) {
			continue
		}
		if !containsFold(entry.Model, filter.Model) {
			continue
		}
		if filter.QualityTier != "" && entry.QualityTier != filter.QualityTier {
			continue
		}
		if filter.Category != "" && entry.Category != filter.Category {
			continue
		}
		matched = append(matched, entry)
	}

	// Stable sort preserves insertion order for equal popularity scores.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PopularityScore > matched[j].PopularityScore
	})
	return matched, nil
}

func (s *Store) ListComparables(_ context.Context, filter ports.ComparableFilter) ([]entities.ReferenceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.ReferenceEntry, 0)
	for _, entry := range s.entries {
		if filter.Brand != "" && !strings.EqualFold(entry.Brand, filter.Brand) {
			continue
		}
		if filter.Model != "" && !strings.EqualFold(entry.Model, filter.Model) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(entry.Category, filter.Category) {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, nil
}

func containsFold(haystack string, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
