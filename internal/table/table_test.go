package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tb := New(
		Column{Name: "id", Type: ColumnText},
		Column{Name: "price", Type: ColumnFloat},
	)
	require.NoError(t, tb.AppendRow(Text("a"), Number(10)))
	require.NoError(t, tb.AppendRow(Text("b"), Null()))
	return tb
}

func TestTable_AppendRowWidth(t *testing.T) {
	tb := New(Column{Name: "x", Type: ColumnInt})
	assert.Error(t, tb.AppendRow(Int(1), Int(2)))
	assert.NoError(t, tb.AppendRow(Int(1)))
	assert.Equal(t, 1, tb.NumRows())
}

func TestTable_CloneIsIndependent(t *testing.T) {
	orig := sampleTable(t)
	cp := orig.Clone()
	require.True(t, orig.Equal(cp))

	cp.Rows[0][1] = Number(99)
	cp.Columns[0].Name = "renamed"

	v, _ := orig.Rows[0][1].Float()
	assert.Equal(t, 10.0, v)
	assert.Equal(t, "id", orig.Columns[0].Name)
}

func TestTable_Select(t *testing.T) {
	tb := sampleTable(t)
	out, err := tb.Select("price", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"price", "id"}, out.Names())
	assert.Equal(t, "a", out.Rows[0][1].Str())

	_, err = tb.Select("missing")
	assert.Error(t, err)
}

func TestTable_WithColumn(t *testing.T) {
	tb := sampleTable(t)
	out, err := tb.WithColumn(Column{Name: "ts", Type: ColumnText}, []Value{Text("t0"), Text("t0")})
	require.NoError(t, err)
	assert.Equal(t, 3, out.NumCols())
	assert.Equal(t, 2, tb.NumCols(), "input must not change")

	_, err = tb.WithColumn(Column{Name: "ts"}, []Value{Text("only one")})
	assert.Error(t, err)
	_, err = tb.WithColumn(Column{Name: "id"}, []Value{Null(), Null()})
	assert.Error(t, err)
}

func TestTable_RowKey(t *testing.T) {
	tb := New(Column{Name: "a"}, Column{Name: "b"})
	require.NoError(t, tb.AppendRow(Text("x|"), Text("y")))
	require.NoError(t, tb.AppendRow(Text("x"), Text("|y")))
	require.NoError(t, tb.AppendRow(Null(), Text("")))
	require.NoError(t, tb.AppendRow(Text(""), Null()))
	require.NoError(t, tb.AppendRow(Null(), Text("")))

	assert.NotEqual(t, tb.RowKey(0), tb.RowKey(1))
	assert.NotEqual(t, tb.RowKey(2), tb.RowKey(3))
	assert.Equal(t, tb.RowKey(2), tb.RowKey(4))
}

func TestTable_MissingCounts(t *testing.T) {
	tb := sampleTable(t)
	assert.Equal(t, []int{0, 1}, tb.MissingCounts())
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Null(), ""},
		{Int(42), "42"},
		{Number(10), "10.0"},
		{Number(2.5), "2.5"},
		{Number(-0.125), "-0.125"},
		{Text("hello"), "hello"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
}

func TestValue_NaNIsMissing(t *testing.T) {
	nan := 0.0
	nan = nan / nan
	assert.True(t, Number(nan).IsNull())
}

func TestColumnType_IsNumeric(t *testing.T) {
	assert.True(t, ColumnInt.IsNumeric())
	assert.True(t, ColumnFloat.IsNumeric())
	assert.True(t, ColumnEmpty.IsNumeric())
	assert.False(t, ColumnText.IsNumeric())
}

func TestValue_LargeIntegersStayExact(t *testing.T) {
	a, b := Int(9007199254740993), Int(9007199254740992)
	assert.False(t, a.Equal(b))
	assert.Equal(t, "9007199254740993", a.String())
	got, ok := a.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), got)

	tb := New(Column{Name: "order_id", Type: ColumnInt})
	require.NoError(t, tb.AppendRow(a))
	require.NoError(t, tb.AppendRow(b))
	assert.NotEqual(t, tb.RowKey(0), tb.RowKey(1))

	// an integral float still matches the same integer
	assert.True(t, Int(3).Equal(Number(3)))
	mixed := New(Column{Name: "n"})
	require.NoError(t, mixed.AppendRow(Int(3)))
	require.NoError(t, mixed.AppendRow(Number(3)))
	assert.Equal(t, mixed.RowKey(0), mixed.RowKey(1))

	_, ok = Number(2.5).Int64()
	assert.False(t, ok)
}
