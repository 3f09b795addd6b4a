package recorder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketSweep/internal/model"
)

func TestSQLiteRecorder_RecordsRuns(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer rec.Close()

	require.NoError(t, rec.RecordReport(&ReportRun{
		RunID: "r1",
		Highlights: &model.Highlights{
			Trend:       model.TrendUp,
			TopGainer:   "bitcoin",
			TopLoser:    "dogecoin",
			TotalAssets: 250,
		},
		CSVPath: "crypto_data.csv",
		Status:  model.StatusSent,
	}))
	require.NoError(t, rec.RecordReport(&ReportRun{RunID: "r2", Status: model.StatusFetchFailed, Error: "status 429"}))
	require.NoError(t, rec.RecordCleaning(&CleaningRun{RunID: "c1", InputPath: "in.csv", State: "DONE"}))

	reports, cleanings, err := rec.CountRuns()
	require.NoError(t, err)
	assert.Equal(t, 2, reports)
	assert.Equal(t, 1, cleanings)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, rec.RecordCleaning(&CleaningRun{RunID: "c1", State: "FAILED"}))
	require.NoError(t, rec.Close())

	rec, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()
	_, cleanings, err := rec.CountRuns()
	require.NoError(t, err)
	assert.Equal(t, 1, cleanings)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	assert.NoError(t, rec.RecordReport(&ReportRun{}))
	assert.NoError(t, rec.RecordCleaning(&CleaningRun{}))
	assert.NoError(t, rec.Close())
}
