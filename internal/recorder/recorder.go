package recorder

import "MarketSweep/internal/model"

// ReportRun holds one daily market report execution.
type ReportRun struct {
	RunID      string
	Highlights *model.Highlights
	CSVPath    string
	Status     model.RunStatus
	Error      string
}

// CleaningRun holds one tabular cleaning execution.
type CleaningRun struct {
	RunID        string
	InputPath    string
	Format       string
	InputRows    int
	OutputRows   int
	Columns      int
	Duplicates   int
	TotalMissing int
	Warnings     int
	State        string // final pipeline state, "DONE" or "FAILED"
	Error        string
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordReport(run *ReportRun) error
	RecordCleaning(run *CleaningRun) error
	Close() error
}
