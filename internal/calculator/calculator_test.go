package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketSweep/internal/model"
)

func f(v float64) *float64 { return &v }

func TestCalculateMean(t *testing.T) {
	got, err := CalculateMean([]*float64{f(1), nil, f(2), f(math.NaN()), f(6)})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 1e-12)

	_, err = CalculateMean([]*float64{nil, f(math.NaN())})
	assert.Error(t, err)

	_, err = CalculateMean(nil)
	assert.Error(t, err)
}

func TestArgMaxArgMin(t *testing.T) {
	tests := []struct {
		name     string
		values   []*float64
		max, min int
	}{
		{"empty", nil, -1, -1},
		{"all missing", []*float64{nil, nil}, -1, -1},
		{"skips leading nil", []*float64{nil, f(2), f(-1)}, 1, 2},
		{"first of ties", []*float64{f(5), f(-3), f(5), f(-3)}, 0, 1},
		{"single", []*float64{f(0)}, 0, 0},
		{"nan skipped", []*float64{f(math.NaN()), f(1)}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.max, ArgMax(tt.values))
			assert.Equal(t, tt.min, ArgMin(tt.values))
		})
	}
}

func TestClassifyTrend(t *testing.T) {
	assert.Equal(t, model.TrendUp, ClassifyTrend(0.01))
	assert.Equal(t, model.TrendDown, ClassifyTrend(-0.01))
	assert.Equal(t, model.TrendNeutral, ClassifyTrend(0))
}

func TestCalculateHighlights(t *testing.T) {
	assets := []model.Asset{
		{ID: "bitcoin", PriceChangePercentage24h: f(2.5)},
		{ID: "tether", PriceChangePercentage24h: nil},
		{ID: "solana", PriceChangePercentage24h: f(-4)},
		{ID: "dogecoin", PriceChangePercentage24h: f(7.5)},
	}
	h := CalculateHighlights(assets)

	assert.Equal(t, model.TrendUp, h.Trend)
	assert.InDelta(t, 2.0, h.AvgChange, 1e-12)
	assert.Equal(t, "dogecoin", h.TopGainer)
	assert.InDelta(t, 7.5, h.TopGainerChange, 1e-12)
	assert.Equal(t, "solana", h.TopLoser)
	assert.InDelta(t, -4.0, h.TopLoserChange, 1e-12)
	assert.Equal(t, 4, h.TotalAssets)
}

func TestCalculateHighlights_NoChanges(t *testing.T) {
	h := CalculateHighlights([]model.Asset{{ID: "x"}, {ID: "y"}})
	assert.Equal(t, model.TrendNeutral, h.Trend)
	assert.Equal(t, NotAvailable, h.TopGainer)
	assert.Equal(t, NotAvailable, h.TopLoser)
	assert.Equal(t, 2, h.TotalAssets)

	empty := CalculateHighlights(nil)
	assert.Equal(t, 0, empty.TotalAssets)
	assert.Equal(t, model.TrendNeutral, empty.Trend)
}
