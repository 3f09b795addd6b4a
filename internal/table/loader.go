package table

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"MarketSweep/internal/model"
)

// Format is the input file variant, chosen once from the path suffix.
type Format int

const (
	FormatDelimited Format = iota + 1
	FormatSpreadsheet
)

func (f Format) String() string {
	switch f {
	case FormatDelimited:
		return "csv"
	case FormatSpreadsheet:
		return "excel"
	default:
		return "unknown"
	}
}

// Loadable reads a file of one format into a Table.
type Loadable interface {
	Load(path string) (*Table, error)
}

// Loader returns the Loadable implementing this format.
func (f Format) Loader() Loadable {
	switch f {
	case FormatDelimited:
		return DelimitedLoader{}
	case FormatSpreadsheet:
		return SpreadsheetLoader{}
	default:
		return nil
	}
}

// DetectFormat maps a path suffix (.csv, .xlsx; case-insensitive) to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatDelimited, nil
	case ".xlsx":
		return FormatSpreadsheet, nil
	default:
		return 0, &model.ConfigurationError{
			Op:  "detect format",
			Err: fmt.Errorf("%w: %q (want .csv or .xlsx)", model.ErrUnsupportedFormat, filepath.Ext(path)),
		}
	}
}

// Resolve checks that path exists and picks its format without reading it.
// A missing path or unknown suffix yields a *model.ConfigurationError.
func Resolve(path string) (Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, &model.ConfigurationError{
				Op:  "load",
				Err: fmt.Errorf("%w: %s", model.ErrPathNotFound, path),
			}
		}
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, &model.ConfigurationError{Op: "load", Err: fmt.Errorf("%s is a directory", path)}
	}
	return DetectFormat(path)
}

// Load resolves path and reads the table.
func Load(path string) (*Table, Format, error) {
	format, err := Resolve(path)
	if err != nil {
		return nil, 0, err
	}

	t, err := format.Loader().Load(path)
	if err != nil {
		return nil, format, fmt.Errorf("load %s: %w", format, err)
	}
	log.Printf("[INFO] loaded %s file %s: %d rows, %d columns", format, path, t.NumRows(), t.NumCols())
	return t, format, nil
}
