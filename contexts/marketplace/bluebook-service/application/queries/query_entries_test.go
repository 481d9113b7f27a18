package queries

import (
	"context"
	"testing"
	"time"

	"relist/contexts/marketplace/bluebook-service/adapters/memory"
	"relist/contexts/marketplace/bluebook-service/domain/entities"
)

func TestQueryEntriesPartialBrandMatch(t *testing.T) {
	store := memory.NewStore(seedEntries(), nil)
	uc := QueryEntriesUseCase{Entries: store}

	result, err := uc.Execute(context.Background(), QueryEntriesQuery{Brand: "ace"})
	if err != nil {
		t.Fatalf("expected query to succeed, got %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 ACE Tools entries, got %d", len(result.Items))
	}
	for _, item := range result.Items {
		if item.Brand != "ACE Tools" {
			t.Fatalf("expected only ACE Tools entries, got %q", item.Brand)
		}
	}
}

func TestQueryEntriesOrderedByPopularity(t *testing.T) {
	store := memory.NewStore(seedEntries(), nil)
	uc := QueryEntriesUseCase{Entries: store}

	result, err := uc.Execute(context.Background(), QueryEntriesQuery{})
	if err != nil {
		t.Fatalf("expected query to succeed, got %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected all 3 entries, got %d", len(result.Items))
	}
	for i := 1; i < len(result.Items); i++ {
		if result.Items[i-1].PopularityScore < result.Items[i].PopularityScore {
			t.Fatalf("expected popularity descending, got %d before %d",
				result.Items[i-1].PopularityScore, result.Items[i].PopularityScore)
		}
	}
	if result.Items[0].EntryID != "entry-2" {
		t.Fatalf("expected most popular entry first, got %q", result.Items[0].EntryID)
	}
}

func TestQueryEntriesEqualPopularityKeepsInsertionOrder(t *testing.T) {
	createdAt := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	store := memory.NewStore([]entities.ReferenceEntry{
		{EntryID: "entry-low", Title: "Hand Saw", Brand: "ACE Tools", PopularityScore: 40, CreatedAt: createdAt},
		{EntryID: "entry-tie-1", Title: "Claw Hammer", Brand: "ACE Tools", PopularityScore: 70, CreatedAt: createdAt},
		{EntryID: "entry-tie-2", Title: "Sledge Hammer", Brand: "ACE Tools", PopularityScore: 70, CreatedAt: createdAt},
	}, nil)
	uc := QueryEntriesUseCase{Entries: store}

	result, err := uc.Execute(context.Background(), QueryEntriesQuery{Brand: "ace"})
	if err != nil {
		t.Fatalf("expected query to succeed, got %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result.Items))
	}
	if result.Items[0].EntryID != "entry-tie-1" || result.Items[1].EntryID != "entry-tie-2" {
		t.Fatalf("expected tied entries in insertion order, got %q then %q",
			result.Items[0].EntryID, result.Items[1].EntryID)
	}
	if result.Items[2].EntryID != "entry-low" {
		t.Fatalf("expected lowest popularity last, got %q", result.Items[2].EntryID)
	}
}

func TestQueryEntriesExactTierAndCategory(t *testing.T) {
	store := memory.NewStore(seedEntries(), nil)
	uc := QueryEntriesUseCase{Entries: store}

	result, err := uc.Execute(context.Background(), QueryEntriesQuery{
		QualityTier: "standard",
		Category:    "tools",
	})
	if err != nil {
		t.Fatalf("expected query to succeed, got %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].EntryID != "entry-1" {
		t.Fatalf("expected only entry-1, got %+v", result.Items)
	}

	// Tier matching is exact, not partial.
	none, err := uc.Execute(context.Background(), QueryEntriesQuery{QualityTier: "stand"})
	if err != nil {
		t.Fatalf("expected query to succeed, got %v", err)
	}
	if len(none.Items) != 0 {
		t.Fatalf("expected no matches for partial tier, got %d", len(none.Items))
	}
}
