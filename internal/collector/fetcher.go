package collector

import (
	"context"

	"MarketSweep/internal/model"
)

// Fetcher defines the interface for fetching the ranked asset list.
type Fetcher interface {
	FetchMarkets(ctx context.Context) ([]model.Asset, error)
	Name() string
}
