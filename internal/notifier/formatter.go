package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"MarketSweep/internal/model"
)

// DailySubject is the subject line of the daily report mail.
const DailySubject = "Daily Crypto Market Update"

// FormatDailyReport formats the highlights into the plaintext mail body.
func FormatDailyReport(h model.Highlights) string {
	var b strings.Builder

	b.WriteString("Hi,\n\n")
	b.WriteString("Please find attached the latest cryptocurrency market update for the past 24 hours.\n")
	b.WriteString("The data includes price changes, market capitalization, all-time highs and lows, and the 24h range for the top assets.\n\n")

	b.WriteString("Highlights of today's report:\n\n")
	b.WriteString(fmt.Sprintf("Overall market trend: %s\n", h.Trend))
	b.WriteString(fmt.Sprintf("Highest gainer (24h): %s\n", mover(h.TopGainer, h.TopGainerChange)))
	b.WriteString(fmt.Sprintf("Highest loser (24h): %s\n", mover(h.TopLoser, h.TopLoserChange)))
	b.WriteString(fmt.Sprintf("Total assets analyzed: %d\n\n", h.TotalAssets))

	b.WriteString("Best regards,\n")
	b.WriteString("Automated Crypto ETL System\n")
	return b.String()
}

func mover(id string, change float64) string {
	if id == "" || id == "N/A" {
		return "N/A"
	}
	return fmt.Sprintf("%s (%s%%)", id, strconv.FormatFloat(change, 'f', -1, 64))
}
