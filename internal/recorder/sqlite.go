package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MarketSweep/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS report_runs (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            TEXT NOT NULL,
			timestamp         INTEGER NOT NULL,
			trend             TEXT,
			avg_change        REAL,
			top_gainer        TEXT,
			top_gainer_change REAL,
			top_loser         TEXT,
			top_loser_change  REAL,
			total_assets      INTEGER,
			csv_path          TEXT,
			status            TEXT,
			error             TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_report_ts ON report_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS cleaning_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        TEXT NOT NULL,
			timestamp     INTEGER NOT NULL,
			input_path    TEXT,
			format        TEXT,
			input_rows    INTEGER,
			output_rows   INTEGER,
			columns       INTEGER,
			duplicates    INTEGER,
			total_missing INTEGER,
			warnings      INTEGER,
			state         TEXT,
			error         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cleaning_ts ON cleaning_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordReport(run *ReportRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := run.Highlights
	if h == nil {
		h = &model.Highlights{}
	}
	_, err := r.db.Exec(`INSERT INTO report_runs
		(run_id, timestamp, trend, avg_change, top_gainer, top_gainer_change,
		 top_loser, top_loser_change, total_assets, csv_path, status, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.RunID, time.Now().Unix(), string(h.Trend), h.AvgChange,
		h.TopGainer, h.TopGainerChange, h.TopLoser, h.TopLoserChange,
		h.TotalAssets, run.CSVPath, string(run.Status), run.Error,
	)
	return err
}

func (r *SQLiteRecorder) RecordCleaning(run *CleaningRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO cleaning_runs
		(run_id, timestamp, input_path, format, input_rows, output_rows, columns,
		 duplicates, total_missing, warnings, state, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.RunID, time.Now().Unix(), run.InputPath, run.Format,
		run.InputRows, run.OutputRows, run.Columns,
		run.Duplicates, run.TotalMissing, run.Warnings, run.State, run.Error,
	)
	return err
}

// CountRuns returns the number of rows in report_runs and cleaning_runs.
func (r *SQLiteRecorder) CountRuns() (reports, cleanings int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err = r.db.QueryRow(`SELECT COUNT(*) FROM report_runs`).Scan(&reports); err != nil {
		return 0, 0, err
	}
	if err = r.db.QueryRow(`SELECT COUNT(*) FROM cleaning_runs`).Scan(&cleanings); err != nil {
		return 0, 0, err
	}
	return reports, cleanings, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
