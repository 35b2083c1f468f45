package frame

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"slices"
	"time"

	"github.com/teemow/gslides/internal/errs"
)

// Table is an in-memory table whose cells are limited to the values the
// Sheets API accepts: string, int64, float64 or nil.
type Table struct {
	columns []string
	rows    [][]any
}

// NewTable builds a table, coercing every cell with Coerce. Every row must
// have one value per column.
func NewTable(columns []string, rows [][]any) (*Table, error) {
	t := &Table{
		columns: slices.Clone(columns),
		rows:    make([][]any, len(rows)),
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d",
				errs.ErrInvalidConfig, i, len(row), len(columns))
		}
		out := make([]any, len(row))
		for j, v := range row {
			c, err := Coerce(v)
			if err != nil {
				return nil, fmt.Errorf("column %q, row %d: %w", columns[j], i, err)
			}
			out[j] = c
		}
		t.rows[i] = out
	}
	return t, nil
}

// Columns returns the column names.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Rows returns the data rows, header excluded.
func (t *Table) Rows() [][]any {
	out := make([][]any, len(t.rows))
	for i, row := range t.rows {
		out[i] = slices.Clone(row)
	}
	return out
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// ColumnIndex returns the 0-based position of a column or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.columns, name)
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]any, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]any, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, true
}

// Coerce converts a value to one a cell can hold. Times become strings
// (a plain date for midnight UTC), decimals become float64 and every Go
// integer or float kind becomes int64 or float64. NaN becomes nil.
func Coerce(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return x, nil
	case time.Time:
		return formatTime(x), nil
	case *time.Time:
		if x == nil {
			return nil, nil
		}
		return formatTime(*x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", errs.ErrUnsupportedType, x)
		}
		return cleanFloat(f), nil
	case *big.Rat:
		if x == nil {
			return nil, nil
		}
		f, _ := x.Float64()
		return cleanFloat(f), nil
	case *big.Float:
		if x == nil {
			return nil, nil
		}
		f, _ := x.Float64()
		return cleanFloat(f), nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return uintValue(x)
	case float32:
		return cleanFloat(float64(x)), nil
	case float64:
		return cleanFloat(x), nil
	}
	return nil, fmt.Errorf("%w: %T is not an accepted type, must be a string, number, time or nil",
		errs.ErrUnsupportedType, v)
}

func formatTime(t time.Time) string {
	if t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

func uintValue(u uint64) (any, error) {
	if u > math.MaxInt64 {
		return float64(u), nil
	}
	return int64(u), nil
}

// cleanFloat maps NaN and the infinities to an empty cell. The Sheets API
// cannot encode them.
func cleanFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
