package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/teemow/gslides/internal/frame"
	"github.com/teemow/gslides/internal/gateway"
	"github.com/teemow/gslides/internal/instrumentation"
	"github.com/teemow/gslides/internal/logging"
	"github.com/teemow/gslides/internal/spreadsheet"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newFrameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Upload tables to sheets and read them back",
	}
	cmd.AddCommand(newFrameUploadCmd())
	cmd.AddCommand(newFrameGetCmd())
	return cmd
}

func newFrameUploadCmd() *cobra.Command {
	var (
		sheet       string
		anchor      string
		overwrite   bool
		encoding    string
		delimiter   string
		sourceSheet string
		formats     map[string]string
	)

	cmd := &cobra.Command{
		Use:   "upload <spreadsheet-id> <file.csv|file.xlsx>",
		Short: "Upload a CSV or XLSX table to a sheet",
		Long: `Upload a local table to a sheet. The first row holds the column names.
Existing data in the target range is only replaced with --overwrite.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readTable(args[1], encoding, delimiter, sourceSheet)
			if err != nil {
				return err
			}

			return withGateway(cmd, func(ctx context.Context, gw *gateway.Gateway, metrics *instrumentation.Metrics) error {
				api, err := gw.Sheets()
				if err != nil {
					return err
				}
				s, err := spreadsheet.Get(ctx, api, args[0])
				if err != nil {
					return err
				}
				name := sheet
				if name == "" {
					names, err := s.SheetNames()
					if err != nil {
						return err
					}
					if len(names) == 0 {
						return fmt.Errorf("spreadsheet %s has no sheets", args[0])
					}
					name = names[0]
				}
				sheetID, err := s.SheetID(name)
				if err != nil {
					return err
				}

				f, err := frame.Create(ctx, api, data, frame.CreateOptions{
					SpreadsheetID: args[0],
					SheetID:       sheetID,
					SheetName:     name,
					AnchorCell:    anchor,
					Overwrite:     overwrite,
				})
				if frame.IsOverwrite(err) {
					return fmt.Errorf("%w; pass --overwrite to replace it", err)
				}
				if err != nil {
					return err
				}
				if len(formats) > 0 {
					if err := f.Format(ctx, api, formats); err != nil {
						return err
					}
				}
				metrics.RecordObjectCreated(ctx, instrumentation.KindFrame)
				current.logger.Info("uploaded frame", logging.Spreadsheet(args[0]), "sheet", name)

				fmt.Fprintf(cmd.OutOrStdout(), "%s!%s:%s\n", f.SheetName(), f.Start(), f.End())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Target sheet name (default: the first sheet)")
	cmd.Flags().StringVar(&anchor, "anchor", frame.DefaultAnchor, "Top left cell of the header")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing data in the target range")
	cmd.Flags().StringVar(&encoding, "encoding", "", "CSV encoding: utf-8, latin1, iso-8859-15 or windows-1252")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV field delimiter (default ',')")
	cmd.Flags().StringVar(&sourceSheet, "xlsx-sheet", "", "Worksheet to read from an XLSX file (default: the first one)")
	cmd.Flags().StringToStringVar(&formats, "format", nil, "Number format per column, e.g. revenue=CURRENCY or share=0.0%")
	return cmd
}

func readTable(path, encoding, delimiter, sourceSheet string) (*frame.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return frame.ReadXLSX(path, sourceSheet)
	}

	opts := frame.CSVOptions{Encoding: encoding}
	if delimiter != "" {
		r := []rune(delimiter)
		if len(r) != 1 {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		opts.Comma = r[0]
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return frame.ReadCSV(f, opts)
}

func newFrameGetCmd() *cobra.Command {
	var (
		sheet  string
		anchor string
		bottom string
	)

	cmd := &cobra.Command{
		Use:   "get <spreadsheet-id>",
		Short: "Print a range of a sheet as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGateway(cmd, func(ctx context.Context, gw *gateway.Gateway, _ *instrumentation.Metrics) error {
				api, err := gw.Sheets()
				if err != nil {
					return err
				}
				f, err := frame.Get(ctx, api, frame.GetOptions{
					SpreadsheetID:   args[0],
					SheetName:       sheet,
					AnchorCell:      anchor,
					BottomRightCell: bottom,
				})
				if err != nil {
					return err
				}
				data, err := f.Data()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(data))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default: the sheet with id 0)")
	cmd.Flags().StringVar(&anchor, "from", frame.DefaultAnchor, "Top left cell, holding the first column name")
	cmd.Flags().StringVar(&bottom, "to", "", "Bottom right cell")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// renderTable draws the table with its column names as header.
func renderTable(data *frame.Table) string {
	rows := make([][]string, 0, data.Len())
	for _, row := range data.Rows() {
		cells := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, cells)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(data.Columns()...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
