package model

// TrendDirection is the overall market direction over the last 24h.
type TrendDirection string

const (
	TrendUp      TrendDirection = "UP"
	TrendDown    TrendDirection = "DOWN"
	TrendNeutral TrendDirection = "NEUTRAL"
)

// RunStatus is the outcome of a report delivery.
type RunStatus string

const (
	StatusSent         RunStatus = "SENT"
	StatusFetchFailed  RunStatus = "FETCH_FAILED"
	StatusExportFailed RunStatus = "EXPORT_FAILED"
	StatusSendFailed   RunStatus = "SEND_FAILED"
)
