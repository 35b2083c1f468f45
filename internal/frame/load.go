package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/teemow/gslides/internal/errs"
)

// CSVOptions configure ReadCSV.
type CSVOptions struct {
	// Encoding of the input: utf-8 (default), latin1, iso-8859-15 or
	// windows-1252.
	Encoding string

	// Comma is the field delimiter (default ',').
	Comma rune
}

var encodings = map[string]encoding.Encoding{
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// ReadCSV reads a table from CSV. The first record holds the column names;
// cells that parse as numbers become int64 or float64 and empty cells nil.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	switch name := strings.ToLower(opts.Encoding); name {
	case "", "utf-8", "utf8":
	default:
		enc, ok := encodings[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown encoding %q", errs.ErrInvalidConfig, opts.Encoding)
		}
		r = enc.NewDecoder().Reader(r)
	}

	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return tableFromRecords(records)
}

// ReadXLSX reads a table from a sheet of an Excel workbook. An empty sheet
// name selects the first sheet.
func ReadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	// Rows are trimmed after their last non-empty cell.
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	for i, row := range rows {
		if len(row) < width {
			rows[i] = append(row, make([]string, width-len(row))...)
		}
	}
	return tableFromRecords(rows)
}

func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", errs.ErrInvalidConfig)
	}
	rows := make([][]any, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]any, len(record))
		for i, v := range record {
			row[i] = parseValue(v)
		}
		rows = append(rows, row)
	}
	return NewTable(records[0], rows)
}

func parseValue(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// ParseFloat also accepts "Inf" and "NaN", which stay text.
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}
