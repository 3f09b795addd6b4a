package cleaning

import (
	"gonum.org/v1/gonum/stat"

	"MarketSweep/internal/model"
	"MarketSweep/internal/table"
)

// Impute fills or drops missing cells column by column, left to right.
//
// Numeric columns get every missing cell replaced by the mean of the
// column's non-missing values, computed once before filling. A numeric
// column with no values at all is left as is and reported as a warning.
// For any other column, rows missing that column are removed before the
// next column is looked at, so column order affects which rows survive.
func Impute(t *table.Table) (*table.Table, []*model.DataQualityWarning) {
	out := t.Clone()
	var warnings []*model.DataQualityWarning

	for c, col := range out.Columns {
		if col.Type.IsNumeric() {
			if w := fillMean(out, c); w != nil {
				warnings = append(warnings, w)
			}
			continue
		}
		dropMissing(out, c)
	}
	return out, warnings
}

func fillMean(t *table.Table, c int) *model.DataQualityWarning {
	mean, n := columnMean(t, c)
	missing := len(t.Rows) - n
	if missing == 0 {
		return nil
	}
	if n == 0 {
		return &model.DataQualityWarning{
			Column:  t.Columns[c].Name,
			Message: "numeric column has no values; mean undefined, missing cells kept",
		}
	}

	// Filling turns an integer column into a float column.
	if t.Columns[c].Type != table.ColumnFloat {
		t.Columns[c].Type = table.ColumnFloat
		for _, row := range t.Rows {
			row[c] = row[c].AsFloat()
		}
	}
	fill := table.Number(mean)
	for _, row := range t.Rows {
		if row[c].IsNull() {
			row[c] = fill
		}
	}
	return nil
}

// columnMean returns the mean of the non-missing numeric cells and how many
// there were.
func columnMean(t *table.Table, c int) (float64, int) {
	var present []float64
	for _, v := range t.Column(c) {
		if f, ok := v.Float(); ok {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return 0, 0
	}
	return stat.Mean(present, nil), len(present)
}

func dropMissing(t *table.Table, c int) {
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		if !row[c].IsNull() {
			kept = append(kept, row)
		}
	}
	// Clear the tail so dropped rows are not retained.
	for i := len(kept); i < len(t.Rows); i++ {
		t.Rows[i] = nil
	}
	t.Rows = kept
}
