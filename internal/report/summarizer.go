package report

import (
	"fmt"
	"time"

	"MarketSweep/internal/calculator"
	"MarketSweep/internal/model"
	"MarketSweep/internal/table"
)

// TimestampLayout formats the capture time in the exported table and file name.
const TimestampLayout = "02-01-2006 15-04-05"

// Columns is the fixed projection of each asset, before the timestamp.
var Columns = []string{
	"id", "current_price", "market_cap", "price_change_percentage_24h",
	"ath", "atl", "high_24h", "low_24h",
}

// Summary is the result of summarizing one market snapshot.
type Summary struct {
	Table      *table.Table
	Highlights model.Highlights
	Timestamp  string
	CapturedAt time.Time
}

// Summarize projects the snapshot to the report columns, appends the
// capture timestamp and derives the highlights.
func Summarize(snap *model.MarketSnapshot) (*Summary, error) {
	full, err := AssetTable(snap.Assets)
	if err != nil {
		return nil, err
	}
	t, err := full.Select(Columns...)
	if err != nil {
		return nil, fmt.Errorf("project report columns: %w", err)
	}

	ts := snap.CapturedAt.Format(TimestampLayout)
	stamps := make([]table.Value, t.NumRows())
	for i := range stamps {
		stamps[i] = table.Text(ts)
	}
	t, err = t.WithColumn(table.Column{Name: "timestamp", Type: table.ColumnText}, stamps)
	if err != nil {
		return nil, fmt.Errorf("append timestamp: %w", err)
	}

	return &Summary{
		Table:      t,
		Highlights: calculator.CalculateHighlights(snap.Assets),
		Timestamp:  ts,
		CapturedAt: snap.CapturedAt,
	}, nil
}

// AssetTable holds every decoded field of the market response, one row
// per asset, in response order.
func AssetTable(assets []model.Asset) (*table.Table, error) {
	text := func(name string) table.Column { return table.Column{Name: name, Type: table.ColumnText} }
	float := func(name string) table.Column { return table.Column{Name: name, Type: table.ColumnFloat} }
	t := table.New(
		text("id"), text("symbol"), text("name"),
		float("current_price"), float("market_cap"), float("market_cap_rank"),
		float("total_volume"), float("high_24h"), float("low_24h"),
		float("price_change_24h"), float("price_change_percentage_24h"),
		float("ath"), float("atl"), text("last_updated"),
	)
	for _, a := range assets {
		rank := table.Null()
		if a.MarketCapRank != nil {
			rank = table.Number(float64(*a.MarketCapRank))
		}
		err := t.AppendRow(
			table.Text(a.ID), table.Text(a.Symbol), table.Text(a.Name),
			number(a.CurrentPrice), number(a.MarketCap), rank,
			number(a.TotalVolume), number(a.High24h), number(a.Low24h),
			number(a.PriceChange24h), number(a.PriceChangePercentage24h),
			number(a.ATH), number(a.ATL), table.Text(a.LastUpdated),
		)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

func number(v *float64) table.Value {
	if v == nil {
		return table.Null()
	}
	return table.Number(*v)
}
