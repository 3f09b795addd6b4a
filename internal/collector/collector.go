package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"MarketSweep/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Assets []model.Asset
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchMarkets(_ context.Context) ([]model.Asset, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Assets != nil {
		return m.Assets, nil
	}
	return generateMockAssets(5), nil
}

func generateMockAssets(count int) []model.Asset {
	assets := make([]model.Asset, count)
	for i := 0; i < count; i++ {
		price := 100 * float64(count-i)
		change := float64(i-count/2) * 1.5
		high, low := price*1.02, price*0.98
		assets[i] = model.Asset{
			ID:                       fmt.Sprintf("mock-%d", i+1),
			Symbol:                   fmt.Sprintf("mk%d", i+1),
			Name:                     fmt.Sprintf("Mock %d", i+1),
			CurrentPrice:             &price,
			PriceChangePercentage24h: &change,
			High24h:                  &high,
			Low24h:                   &low,
		}
	}
	return assets
}

// Collector wraps a Fetcher and stamps each result with its capture time.
type Collector struct {
	Fetcher  Fetcher
	Currency string
	Now      func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, currency string) *Collector {
	return &Collector{Fetcher: fetcher, Currency: currency, Now: time.Now}
}

// Collect fetches one market snapshot.
func (c *Collector) Collect(ctx context.Context) (*model.MarketSnapshot, error) {
	assets, err := c.Fetcher.FetchMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect from %s: %w", c.Fetcher.Name(), err)
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	snap := &model.MarketSnapshot{
		Assets:     assets,
		Currency:   c.Currency,
		CapturedAt: now(),
	}
	log.Printf("[INFO] Fetched %d assets from %s", len(assets), c.Fetcher.Name())
	return snap, nil
}
