package frame

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/teemow/gslides/internal/errs"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "string", in: "abc", want: "abc"},
		{name: "int", in: 3, want: int64(3)},
		{name: "int8", in: int8(-3), want: int64(-3)},
		{name: "uint32", in: uint32(7), want: int64(7)},
		{name: "huge uint64", in: uint64(math.MaxUint64), want: float64(math.MaxUint64)},
		{name: "float32", in: float32(0.5), want: 0.5},
		{name: "float64", in: 1.25, want: 1.25},
		{name: "NaN", in: math.NaN(), want: nil},
		{name: "positive infinity", in: math.Inf(1), want: nil},
		{name: "negative infinity", in: float32(math.Inf(-1)), want: nil},
		{name: "overflowing big float", in: new(big.Float).SetInf(false), want: nil},
		{name: "integral json number", in: json.Number("42"), want: int64(42)},
		{name: "json number", in: json.Number("4.5"), want: 4.5},
		{name: "rat", in: big.NewRat(1, 4), want: 0.25},
		{name: "big float", in: big.NewFloat(2.5), want: 2.5},
		{name: "date", in: time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), want: "2021-03-04"},
		{name: "timestamp", in: time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC), want: "2021-03-04T05:06:07Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceUnsupported(t *testing.T) {
	for _, v := range []any{true, struct{}{}, []int{1}, json.Number("abc")} {
		_, err := Coerce(v)
		assert.True(t, errors.Is(err, errs.ErrUnsupportedType), "%T", v)
	}
}

func TestNewTable(t *testing.T) {
	table, err := NewTable([]string{"a", "b"}, [][]any{{1, "x"}, {2.5, nil}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, table.Columns())
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 1, table.ColumnIndex("b"))
	assert.Equal(t, -1, table.ColumnIndex("c"))

	col, ok := table.Column("a")
	require.True(t, ok)
	assert.Equal(t, []any{int64(1), 2.5}, col)

	rows := table.Rows()
	rows[0][0] = "changed"
	assert.Equal(t, int64(1), table.Rows()[0][0])
}

func TestNewTableErrors(t *testing.T) {
	_, err := NewTable([]string{"a", "b"}, [][]any{{1}})
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))

	_, err = NewTable([]string{"a"}, [][]any{{true}})
	assert.True(t, errors.Is(err, errs.ErrUnsupportedType))
	assert.Contains(t, err.Error(), `column "a"`)
}

func TestReadCSV(t *testing.T) {
	in := "name,count,ratio\nalpha,1,0.5\nbeta,,2\n"
	table, err := ReadCSV(strings.NewReader(in), CSVOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "count", "ratio"}, table.Columns())
	assert.Equal(t, [][]any{
		{"alpha", int64(1), 0.5},
		{"beta", nil, int64(2)},
	}, table.Rows())
}

func TestReadCSVSpecialFloats(t *testing.T) {
	in := "name,v\nInf,1\nNaN,2\n-Infinity,1e400\n"
	table, err := ReadCSV(strings.NewReader(in), CSVOptions{})
	require.NoError(t, err)

	rows := table.Rows()
	assert.Equal(t, [][]any{
		{"Inf", int64(1)},
		{"NaN", int64(2)},
		{"-Infinity", "1e400"},
	}, rows)

	_, err = json.Marshal(rows)
	assert.NoError(t, err)
}

func TestReadCSVEncoding(t *testing.T) {
	in := "city;n\nM\xfcnchen;3\n"
	table, err := ReadCSV(strings.NewReader(in), CSVOptions{Encoding: "latin1", Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"München", int64(3)}}, table.Rows())

	_, err = ReadCSV(strings.NewReader(in), CSVOptions{Encoding: "ebcdic"})
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))

	_, err = ReadCSV(strings.NewReader(""), CSVOptions{})
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]any{"month", "sales", "note"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]any{"jan", 10, "ok"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A3", &[]any{"feb", 12.5}))
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	table, err := ReadXLSX(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"month", "sales", "note"}, table.Columns())
	assert.Equal(t, [][]any{
		{"jan", int64(10), "ok"},
		{"feb", 12.5, nil},
	}, table.Rows())

	_, err = ReadXLSX(path, "Missing")
	assert.Error(t, err)
}
