package frame

import (
	"context"
	"errors"
	"fmt"

	sheets "google.golang.org/api/sheets/v4"

	"github.com/teemow/gslides/internal/cell"
	"github.com/teemow/gslides/internal/errs"
	gsheets "github.com/teemow/gslides/internal/sheets"
)

// DefaultAnchor is the top left cell used when none is given.
const DefaultAnchor = "A1"

// ErrOverwrite is returned by Create when the target cells already hold data.
var ErrOverwrite = fmt.Errorf("%w: create table will overwrite existing data", errs.ErrConflict)

// Frame is a rectangular block of cells in a sheet: a header row at Start
// followed by the data rows, ending at End (both inclusive).
type Frame struct {
	spreadsheetID string
	sheetID       int64
	sheetName     string
	start         cell.Address
	end           cell.Address
	data          *Table
	initialized   bool
}

// CreateOptions select where Create writes the table.
type CreateOptions struct {
	SpreadsheetID string
	SheetID       int64

	// SheetName is resolved from SheetID when empty.
	SheetName string

	// AnchorCell is the header's top left cell (default A1).
	AnchorCell string

	// Overwrite skips the check for existing data.
	Overwrite bool
}

// GetOptions select the rectangle Get reads.
type GetOptions struct {
	SpreadsheetID   string
	SheetID         int64
	SheetName       string
	AnchorCell      string
	BottomRightCell string
}

// Create writes the header and rows of data below and right of the anchor
// cell. Unless Overwrite is set the rectangle is read first and the write
// fails with ErrOverwrite when any cell holds a value.
func Create(ctx context.Context, api gsheets.API, data *Table, opts CreateOptions) (*Frame, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: no data to create", errs.ErrInvalidConfig)
	}
	if len(data.columns) == 0 {
		return nil, fmt.Errorf("%w: table has no columns", errs.ErrInvalidConfig)
	}

	anchor := opts.AnchorCell
	if anchor == "" {
		anchor = DefaultAnchor
	}
	start, err := cell.Parse(anchor)
	if err != nil {
		return nil, err
	}
	end := cell.Address{
		Row:    start.Row + data.Len(),
		Column: start.Column + len(data.columns) - 1,
	}
	if _, err := cell.ColumnLetters(end.Column); err != nil {
		return nil, fmt.Errorf("table does not fit right of %s: %w", anchor, err)
	}

	sheetName, err := resolveSheetName(ctx, api, opts.SpreadsheetID, opts.SheetID, opts.SheetName)
	if err != nil {
		return nil, err
	}

	f := &Frame{
		spreadsheetID: opts.SpreadsheetID,
		sheetID:       opts.SheetID,
		sheetName:     sheetName,
		start:         start,
		end:           end,
		data:          data,
	}

	if !opts.Overwrite {
		existing, err := f.read(ctx, api)
		if err != nil {
			return nil, err
		}
		if hasValues(existing) {
			return nil, ErrOverwrite
		}
	}

	header, err := cell.Range(sheetName, start, cell.Address{Row: start.Row, Column: end.Column})
	if err != nil {
		return nil, err
	}
	values, err := cell.Range(sheetName, cell.Address{Row: start.Row + 1, Column: start.Column}, end)
	if err != nil {
		return nil, err
	}

	headerRow := make([]any, len(data.columns))
	for i, c := range data.columns {
		headerRow[i] = c
	}
	writes := []*sheets.ValueRange{
		{Range: header, Values: [][]any{headerRow}},
		{Range: values, Values: data.rows},
	}
	if _, err := api.BatchUpdateValues(ctx, opts.SpreadsheetID, writes); err != nil {
		return nil, fmt.Errorf("failed to write table: %w", err)
	}

	f.initialized = true
	return f, nil
}

// Get reads the rectangle between the anchor and bottom right cells. The
// first row holds the column names. Short rows are padded with nil and empty
// strings become nil.
func Get(ctx context.Context, api gsheets.API, opts GetOptions) (*Frame, error) {
	start, err := cell.Parse(opts.AnchorCell)
	if err != nil {
		return nil, err
	}
	end, err := cell.Parse(opts.BottomRightCell)
	if err != nil {
		return nil, err
	}
	if end.Row < start.Row || end.Column < start.Column {
		return nil, fmt.Errorf("%w: %s is not below and right of %s",
			errs.ErrInvalidConfig, opts.BottomRightCell, opts.AnchorCell)
	}

	sheetName, err := resolveSheetName(ctx, api, opts.SpreadsheetID, opts.SheetID, opts.SheetName)
	if err != nil {
		return nil, err
	}

	f := &Frame{
		spreadsheetID: opts.SpreadsheetID,
		sheetID:       opts.SheetID,
		sheetName:     sheetName,
		start:         start,
		end:           end,
	}

	values, err := f.read(ctx, api)
	if err != nil {
		return nil, err
	}
	f.data = tableFromValues(values)
	f.initialized = true
	return f, nil
}

// Data returns the table of a frame produced by Create or Get.
func (f *Frame) Data() (*Table, error) {
	if f == nil || !f.initialized {
		return nil, fmt.Errorf("%w: must run create or get before using the data", errs.ErrNotExecuted)
	}
	return f.data, nil
}

// SpreadsheetID returns the id of the spreadsheet holding the frame.
func (f *Frame) SpreadsheetID() string { return f.spreadsheetID }

// SheetID returns the id of the sheet holding the frame.
func (f *Frame) SheetID() int64 { return f.sheetID }

// SheetName returns the title of the sheet holding the frame.
func (f *Frame) SheetName() string { return f.sheetName }

// Start returns the top left cell (the first header cell).
func (f *Frame) Start() cell.Address { return f.start }

// End returns the bottom right cell.
func (f *Frame) End() cell.Address { return f.end }

// ColumnRange returns the grid range of a column, header row included.
// Grid ranges are 0-based and half open.
func (f *Frame) ColumnRange(column string) (*sheets.GridRange, error) {
	col, err := f.columnNumber(column)
	if err != nil {
		return nil, err
	}
	return &sheets.GridRange{
		SheetId:          f.sheetID,
		StartRowIndex:    int64(f.start.Row - 1),
		EndRowIndex:      int64(f.end.Row),
		StartColumnIndex: int64(col - 1),
		EndColumnIndex:   int64(col),
	}, nil
}

// DataRange is ColumnRange without the header row.
func (f *Frame) DataRange(column string) (*sheets.GridRange, error) {
	rng, err := f.ColumnRange(column)
	if err != nil {
		return nil, err
	}
	rng.StartRowIndex++
	return rng, nil
}

func (f *Frame) columnNumber(column string) (int, error) {
	if f.data == nil {
		return 0, fmt.Errorf("%w: frame has no data", errs.ErrNotExecuted)
	}
	idx := f.data.ColumnIndex(column)
	if idx < 0 {
		return 0, fmt.Errorf("%w: column %q is not in the frame", errs.ErrInvalidConfig, column)
	}
	return f.start.Column + idx, nil
}

func (f *Frame) read(ctx context.Context, api gsheets.API) ([][]any, error) {
	rng, err := cell.Range(f.sheetName, f.start, f.end)
	if err != nil {
		return nil, err
	}
	resp, err := api.GetValues(ctx, f.spreadsheetID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	return resp.Values, nil
}

func resolveSheetName(ctx context.Context, api gsheets.API, spreadsheetID string, sheetID int64, name string) (string, error) {
	if spreadsheetID == "" {
		return "", fmt.Errorf("%w: spreadsheet id is required", errs.ErrInvalidConfig)
	}
	if name != "" {
		return name, nil
	}
	title, err := api.SheetTitle(ctx, spreadsheetID, sheetID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve sheet name: %w", err)
	}
	return title, nil
}

func hasValues(values [][]any) bool {
	for _, row := range values {
		for _, v := range row {
			if v != nil && v != "" {
				return true
			}
		}
	}
	return false
}

func tableFromValues(values [][]any) *Table {
	if len(values) == 0 {
		return &Table{}
	}
	width := 0
	for _, row := range values {
		width = max(width, len(row))
	}

	columns := make([]string, width)
	for i := range columns {
		if i < len(values[0]) && values[0][i] != nil {
			columns[i] = fmt.Sprint(values[0][i])
		}
	}

	rows := make([][]any, 0, len(values)-1)
	for _, src := range values[1:] {
		row := make([]any, width)
		for i, v := range src {
			if v != "" {
				row[i] = v
			}
		}
		rows = append(rows, row)
	}
	return &Table{columns: columns, rows: rows}
}

// IsOverwrite reports whether err was caused by existing data at the target.
func IsOverwrite(err error) bool {
	return errors.Is(err, ErrOverwrite)
}
