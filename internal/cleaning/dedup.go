package cleaning

import "MarketSweep/internal/table"

// Deduplicate splits t into the rows seen for the first time and the rows
// repeating an earlier row value-for-value. Both results are independent
// copies; t is not modified.
func Deduplicate(t *table.Table) (deduped, duplicates *table.Table) {
	deduped = table.New(t.Columns...)
	duplicates = table.New(t.Columns...)

	seen := make(map[string]struct{}, t.NumRows())
	for i, row := range t.Rows {
		key := t.RowKey(i)
		if _, dup := seen[key]; dup {
			duplicates.Rows = append(duplicates.Rows, copyRow(row))
			continue
		}
		seen[key] = struct{}{}
		deduped.Rows = append(deduped.Rows, copyRow(row))
	}
	return deduped, duplicates
}

func copyRow(r []table.Value) []table.Value {
	out := make([]table.Value, len(r))
	copy(out, r)
	return out
}
