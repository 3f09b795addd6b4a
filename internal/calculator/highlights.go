package calculator

import (
	"MarketSweep/internal/model"
)

// NotAvailable stands in for a gainer or loser when no asset reported a change.
const NotAvailable = "N/A"

// ClassifyTrend maps the average 24h change to a direction.
func ClassifyTrend(avg float64) model.TrendDirection {
	switch {
	case avg > 0:
		return model.TrendUp
	case avg < 0:
		return model.TrendDown
	default:
		return model.TrendNeutral
	}
}

// CalculateHighlights derives the report figures from the 24h percentage
// changes. Assets without a change are skipped for trend, gainer and loser
// but still counted.
func CalculateHighlights(assets []model.Asset) model.Highlights {
	changes := make([]*float64, len(assets))
	for i := range assets {
		changes[i] = assets[i].PriceChangePercentage24h
	}

	h := model.Highlights{
		Trend:       model.TrendNeutral,
		TopGainer:   NotAvailable,
		TopLoser:    NotAvailable,
		TotalAssets: len(assets),
	}
	if avg, err := CalculateMean(changes); err == nil {
		h.AvgChange = avg
		h.Trend = ClassifyTrend(avg)
	}
	if i := ArgMax(changes); i >= 0 {
		h.TopGainer = assets[i].ID
		h.TopGainerChange = *changes[i]
	}
	if i := ArgMin(changes); i >= 0 {
		h.TopLoser = assets[i].ID
		h.TopLoserChange = *changes[i]
	}
	return h
}
