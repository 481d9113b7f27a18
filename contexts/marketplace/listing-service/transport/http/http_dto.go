package httptransport

type CreateListingRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Brand          string   `json:"brand,omitempty"`
	Model          string   `json:"model,omitempty"`
	Category       string   `json:"category"`
	Price          float64  `json:"price"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	ShippingCost   *float64 `json:"shippingCost,omitempty"`
	ShippingMethod string   `json:"shippingMethod,omitempty"`
}

type RenewListingRequest struct {
	Price        *float64 `json:"price,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	ShippingCost *float64 `json:"shippingCost,omitempty"`
}

type ListingDTO struct {
	ListingID      string   `json:"listing_id"`
	SellerID       string   `json:"seller_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Brand          string   `json:"brand,omitempty"`
	Model          string   `json:"model,omitempty"`
	Category       string   `json:"category"`
	Price          float64  `json:"price"`
	ImageURL       string   `json:"image_url,omitempty"`
	ShippingCost   *float64 `json:"shipping_cost,omitempty"`
	ShippingMethod string   `json:"shipping_method,omitempty"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"created_at"`
	ExpiresAt      string   `json:"expires_at"`
}

type PriceAdviceDTO struct {
	Flagged      bool    `json:"flagged"`
	PercentOver  int     `json:"percent_over"`
	AveragePrice float64 `json:"average_price"`
}

type CreateListingResponse struct {
	Item        ListingDTO      `json:"item"`
	PriceAdvice *PriceAdviceDTO `json:"price_advice,omitempty"`
}

type RenewListingResponse struct {
	Item        ListingDTO      `json:"item"`
	PriceAdvice *PriceAdviceDTO `json:"price_advice,omitempty"`
}

type GetListingResponse struct {
	Item ListingDTO `json:"item"`
}

type ListListingsResponse struct {
	Items []ListingDTO `json:"items"`
}

type SweepExpirationsResponse struct {
	Updated int `json:"updated"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
