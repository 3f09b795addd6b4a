package table

import (
	"fmt"
	"strconv"
	"strings"
)

// missingMarkers are the cell texts read as missing values.
var missingMarkers = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {}, "#NA": {}, "<NA>": {},
	"#N/A N/A": {}, "1.#IND": {}, "-1.#IND": {}, "1.#QNAN": {}, "-1.#QNAN": {},
}

// IsMissing reports whether a raw cell is read as a missing value.
// Markers match the cell exactly; " " and " NA " are text.
func IsMissing(raw string) bool {
	_, ok := missingMarkers[raw]
	return ok
}

// FromRecords builds a typed table from a header and raw string records.
// Short records are padded with missing cells, long ones truncated.
func FromRecords(header []string, records [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("no columns")
	}
	names := uniqueNames(header)
	width := len(names)

	cols := make([]Column, width)
	for c := range cols {
		cols[c] = Column{Name: names[c], Type: inferType(records, c)}
	}

	t := &Table{Columns: cols, Rows: make([][]Value, len(records))}
	for r, rec := range records {
		row := make([]Value, width)
		for c := 0; c < width; c++ {
			raw := ""
			if c < len(rec) {
				raw = rec[c]
			}
			row[c] = parseCell(raw, cols[c].Type)
		}
		t.Rows[r] = row
	}
	return t, nil
}

func inferType(records [][]string, c int) ColumnType {
	seen, missing := false, false
	allInt := true
	for _, rec := range records {
		if c >= len(rec) || IsMissing(rec[c]) {
			missing = true
			continue
		}
		s := strings.TrimSpace(rec[c])
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return ColumnText
		}
		seen = true
		if allInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				allInt = false
			}
		}
	}
	switch {
	case !seen:
		return ColumnEmpty
	case allInt && !missing:
		return ColumnInt
	default:
		return ColumnFloat
	}
}

func parseCell(raw string, typ ColumnType) Value {
	if IsMissing(raw) {
		return Null()
	}
	s := strings.TrimSpace(raw)
	switch typ {
	case ColumnInt:
		i, _ := strconv.ParseInt(s, 10, 64)
		return Int(i)
	case ColumnFloat:
		f, _ := strconv.ParseFloat(s, 64)
		return Number(f)
	case ColumnEmpty:
		return Null()
	default:
		return Text(raw)
	}
}

// uniqueNames fills blank headers and disambiguates repeats as name.1, name.2.
func uniqueNames(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	suffix := make(map[string]int)
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for seen[name] {
			suffix[base]++
			name = fmt.Sprintf("%s.%d", base, suffix[base])
		}
		seen[name] = true
		out[i] = name
	}
	return out
}
