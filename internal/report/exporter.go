package report

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"MarketSweep/internal/table"
)

// Exporter writes summaries as CSV files into Dir.
type Exporter struct {
	Dir string
}

// NewExporter creates an Exporter for dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir}
}

// FileName is the export name for a capture timestamp.
func FileName(timestamp string) string {
	return fmt.Sprintf("crypto_data of %s.csv", timestamp)
}

// Export writes the summary table and returns the file path.
func (e *Exporter) Export(s *Summary) (string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(s.Timestamp))
	if err := table.WriteCSV(path, s.Table); err != nil {
		return "", err
	}
	log.Printf("[INFO] Data saved as %s (%d rows)", path, s.Table.NumRows())
	return path, nil
}
