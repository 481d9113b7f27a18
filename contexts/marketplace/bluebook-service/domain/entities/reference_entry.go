package entities

import (
	"math"
	"time"
)

// OverpriceThreshold flags proposals more than 25% above the reference
// average. Advisory only; it never blocks a listing.
const OverpriceThreshold = 1.25

// ReferenceEntry is one Blue Book record: the representative market price for
// a category of item. Entries are read-only from this core; their ingestion
// is maintained elsewhere.
type ReferenceEntry struct {
	EntryID         string
	Title           string
	Brand           string
	Model           string
	Category        string
	QualityTier     string
	AvgPrice        float64
	BasePriceCents  int64
	PopularityScore int
	CreatedAt       time.Time
}

// IsOverpriced reports whether a proposed price crosses the flag threshold
// and how far above the average it sits, as a rounded percentage.
func (e ReferenceEntry) IsOverpriced(proposedPrice float64) (bool, int) {
	if e.AvgPrice <= 0 {
		return false, 0
	}
	percent := int(math.Round((proposedPrice/e.AvgPrice - 1) * 100))
	return proposedPrice > e.AvgPrice*OverpriceThreshold, percent
}
