package httptransport

type ReferenceEntryDTO struct {
	EntryID         string  `json:"entry_id"`
	Title           string  `json:"title"`
	Brand           string  `json:"brand,omitempty"`
	Model           string  `json:"model,omitempty"`
	Category        string  `json:"category,omitempty"`
	QualityTier     string  `json:"quality_tier,omitempty"`
	AvgPrice        float64 `json:"avg_price"`
	BasePriceCents  int64   `json:"base_price_cents"`
	PopularityScore int     `json:"popularity_score"`
}

type QueryEntriesResponse struct {
	Items []ReferenceEntryDTO `json:"items"`
}

type LookupEntryResponse struct {
	Found bool               `json:"found"`
	Entry *ReferenceEntryDTO `json:"entry,omitempty"`
}

type PriceCheckResponse struct {
	Found        bool    `json:"found"`
	Flagged      bool    `json:"flagged"`
	PercentOver  int     `json:"percent_over"`
	AveragePrice float64 `json:"average_price,omitempty"`
}

type SuggestedPriceResponse struct {
	ListingID       string  `json:"listing_id"`
	SuggestedPrice  float64 `json:"suggestedPrice"`
	ComparableCount int     `json:"comparable_count"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
