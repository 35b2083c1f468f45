package frame

import (
	"context"
	"fmt"
	"sort"

	sheets "google.golang.org/api/sheets/v4"

	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/errs"
	gsheets "github.com/teemow/gslides/internal/sheets"
)

// Format sets the number format of the data cells of columns. A format from
// the number_format enum (e.g. PERCENT) sets the format type, anything else
// is used as a NUMBER pattern such as "#,##0.00".
func (f *Frame) Format(ctx context.Context, api gsheets.API, formats map[string]string) error {
	if err := f.ValidateFormats(formats); err != nil {
		return err
	}
	if len(formats) == 0 {
		return nil
	}

	requests, err := f.formatRequests(formats)
	if err != nil {
		return err
	}
	if _, err := api.BatchUpdate(ctx, f.spreadsheetID, requests); err != nil {
		return fmt.Errorf("failed to format columns: %w", err)
	}
	return nil
}

func (f *Frame) formatRequests(formats map[string]string) ([]*sheets.Request, error) {
	// Sorted so a call renders the same request on every run.
	columns := make([]string, 0, len(formats))
	for c := range formats {
		columns = append(columns, c)
	}
	sort.Slice(columns, func(i, j int) bool {
		return f.data.ColumnIndex(columns[i]) < f.data.ColumnIndex(columns[j])
	})

	requests := make([]*sheets.Request, 0, len(columns))
	for _, column := range columns {
		rng, err := f.DataRange(column)
		if err != nil {
			return nil, err
		}
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: rng,
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: NumberFormat(formats[column]),
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		})
	}
	return requests, nil
}

// NumberFormat converts a format type or pattern into its API form.
func NumberFormat(format string) *sheets.NumberFormat {
	if config.IsAllowed(config.ParamNumberFormat, format) {
		return &sheets.NumberFormat{Type: format}
	}
	return &sheets.NumberFormat{Type: "NUMBER", Pattern: format}
}

// ValidateFormats checks that every column exists in the frame.
func (f *Frame) ValidateFormats(formats map[string]string) error {
	if _, err := f.Data(); err != nil {
		return err
	}
	for c, format := range formats {
		if !f.data.HasColumn(c) {
			return fmt.Errorf("%w: column %q is not in the frame", errs.ErrInvalidConfig, c)
		}
		if format == "" {
			return fmt.Errorf("%w: empty number format for column %q", errs.ErrInvalidConfig, c)
		}
	}
	return nil
}
