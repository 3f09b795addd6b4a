package table

import (
	"fmt"
	"strings"
)

// ColumnType is the declared type of a column, fixed at load time.
type ColumnType uint8

const (
	ColumnText ColumnType = iota
	ColumnInt
	ColumnFloat
	// ColumnEmpty holds only missing cells. It counts as numeric.
	ColumnEmpty
)

func (t ColumnType) String() string {
	switch t {
	case ColumnInt:
		return "int64"
	case ColumnFloat:
		return "float64"
	case ColumnEmpty:
		return "empty"
	default:
		return "object"
	}
}

// IsNumeric reports whether missing cells in the column are imputed
// rather than dropped.
func (t ColumnType) IsNumeric() bool {
	return t == ColumnInt || t == ColumnFloat || t == ColumnEmpty
}

// Column names and types one column.
type Column struct {
	Name string
	Type ColumnType
}

// Table is an ordered sequence of rows sharing one column set.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []Column
	Rows    [][]Value
}

// New returns an empty table with the given columns.
func New(cols ...Column) *Table {
	c := make([]Column, len(cols))
	copy(c, cols)
	return &Table{Columns: c}
}

func (t *Table) NumRows() int { return len(t.Rows) }
func (t *Table) NumCols() int { return len(t.Columns) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// AppendRow adds a row. The row is copied.
func (t *Table) AppendRow(row ...Value) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.Columns))
	}
	r := make([]Value, len(row))
	copy(r, row)
	t.Rows = append(t.Rows, r)
	return nil
}

// Clone returns a deep copy that shares no storage with t.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: make([]Column, len(t.Columns)),
		Rows:    make([][]Value, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	for i, r := range t.Rows {
		out.Rows[i] = cloneRow(r)
	}
	return out
}

// Select projects the named columns, in the order given, into a new table.
func (t *Table) Select(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	cols := make([]Column, len(names))
	for i, n := range names {
		j := t.ColumnIndex(n)
		if j < 0 {
			return nil, fmt.Errorf("select: unknown column %q", n)
		}
		idx[i] = j
		cols[i] = t.Columns[j]
	}
	out := &Table{Columns: cols, Rows: make([][]Value, len(t.Rows))}
	for r, row := range t.Rows {
		nr := make([]Value, len(idx))
		for i, j := range idx {
			nr[i] = row[j]
		}
		out.Rows[r] = nr
	}
	return out, nil
}

// WithColumn returns a new table with col appended, one value per row.
func (t *Table) WithColumn(col Column, values []Value) (*Table, error) {
	if len(values) != len(t.Rows) {
		return nil, fmt.Errorf("column %q has %d values, table has %d rows", col.Name, len(values), len(t.Rows))
	}
	if t.ColumnIndex(col.Name) >= 0 {
		return nil, fmt.Errorf("column %q already exists", col.Name)
	}
	out := &Table{
		Columns: append(append(make([]Column, 0, len(t.Columns)+1), t.Columns...), col),
		Rows:    make([][]Value, len(t.Rows)),
	}
	for i, row := range t.Rows {
		nr := make([]Value, len(row), len(row)+1)
		copy(nr, row)
		out.Rows[i] = append(nr, values[i])
	}
	return out, nil
}

// Column returns a copy of the cells of column i.
func (t *Table) Column(i int) []Value {
	out := make([]Value, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// RowKey encodes row i so that two rows have the same key exactly when
// they are equal value-for-value across all columns.
func (t *Table) RowKey(i int) string {
	var b strings.Builder
	for _, v := range t.Rows[i] {
		v.appendKey(&b)
	}
	return b.String()
}

// MissingCounts returns the number of missing cells per column.
func (t *Table) MissingCounts() []int {
	counts := make([]int, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			if v.IsNull() {
				counts[i]++
			}
		}
	}
	return counts
}

// Equal reports whether both tables have the same columns and cells.
func (t *Table) Equal(o *Table) bool {
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i] != o.Columns[i] {
			return false
		}
	}
	for r := range t.Rows {
		for c := range t.Rows[r] {
			if !t.Rows[r][c].Equal(o.Rows[r][c]) {
				return false
			}
		}
	}
	return true
}

func cloneRow(r []Value) []Value {
	out := make([]Value, len(r))
	copy(out, r)
	return out
}
