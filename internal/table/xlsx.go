package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetLoader reads the first sheet of an .xlsx workbook.
// The first row is the header. Date-formatted cells are read as
// text dates, not as their serial numbers.
type SpreadsheetLoader struct{}

func (SpreadsheetLoader) Load(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	dates := newDateReader(f, sheet)
	// Trailing blank rows are skipped, as are fully blank rows in between.
	records := make([][]string, 0, len(rows)-1)
	for r, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		for c, cell := range row {
			if d, ok := dates.read(c+1, r+2, cell); ok {
				row[c] = d
			}
		}
		records = append(records, row)
	}
	return FromRecords(rows[0], records)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// dateReader converts serial numbers in date-formatted cells.
type dateReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	isDate   map[int]bool // style index -> date format
}

func newDateReader(f *excelize.File, sheet string) *dateReader {
	d := &dateReader{f: f, sheet: sheet, isDate: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// read returns the cell as a date string when its style is a date format.
func (d *dateReader) read(col, row int, raw string) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", false
	}
	styleID, err := d.f.GetCellStyle(d.sheet, axis)
	if err != nil || styleID == 0 {
		return "", false
	}
	date, seen := d.isDate[styleID]
	if !seen {
		date = d.styleIsDate(styleID)
		d.isDate[styleID] = date
	}
	if !date {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	return formatDate(t), true
}

func (d *dateReader) styleIsDate(styleID int) bool {
	style, err := d.f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return customFormatIsDate(*style.CustomNumFmt)
	}
	return builtinDateFormat(style.NumFmt)
}

// builtinDateFormat reports whether a built-in number format id is a date
// or time format.
func builtinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47,
		id >= 50 && id <= 58, id >= 71 && id <= 81:
		return true
	}
	return false
}

// customFormatIsDate looks for date or time tokens outside quoted literals
// and bracketed sections.
func customFormatIsDate(format string) bool {
	var b strings.Builder
	quoted, bracket, escaped := false, false, false
	for _, r := range format {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ydhs")
}

func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}
