package model

import "time"

// Asset is one ranked entry from the markets endpoint.
// Pointer fields are nil when the upstream value was null.
type Asset struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	TotalVolume              *float64 `json:"total_volume"`
	High24h                  *float64 `json:"high_24h"`
	Low24h                   *float64 `json:"low_24h"`
	PriceChange24h           *float64 `json:"price_change_24h"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	ATH                      *float64 `json:"ath"`
	ATL                      *float64 `json:"atl"`
	LastUpdated              string   `json:"last_updated"`
}

// MarketSnapshot holds one fetch of the ranked asset list.
type MarketSnapshot struct {
	Assets     []Asset
	Currency   string
	CapturedAt time.Time
}
