package model

// Highlights are the scalar figures embedded in the daily report mail.
type Highlights struct {
	Trend           TrendDirection
	AvgChange       float64
	TopGainer       string
	TopGainerChange float64
	TopLoser        string
	TopLoserChange  float64
	TotalAssets     int
}
