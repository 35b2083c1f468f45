package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teemow/gslides/internal/gateway"
	"github.com/teemow/gslides/internal/instrumentation"
	"github.com/teemow/gslides/internal/spreadsheet"
)

func newSpreadsheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spreadsheet",
		Short: "Create spreadsheets and manage their sheets",
	}
	cmd.AddCommand(newSpreadsheetCreateCmd())
	cmd.AddCommand(newSpreadsheetGetCmd())
	cmd.AddCommand(newSpreadsheetSheetsCmd("add-sheets", "Add sheets to a spreadsheet",
		func(ctx context.Context, s *spreadsheet.Spreadsheet, gw *gateway.Gateway, names []string) error {
			api, err := gw.Sheets()
			if err != nil {
				return err
			}
			return s.AddSheets(ctx, api, names)
		}))
	cmd.AddCommand(newSpreadsheetSheetsCmd("rm-sheets", "Remove sheets from a spreadsheet",
		func(ctx context.Context, s *spreadsheet.Spreadsheet, gw *gateway.Gateway, names []string) error {
			api, err := gw.Sheets()
			if err != nil {
				return err
			}
			return s.RemoveSheets(ctx, api, names)
		}))
	return cmd
}

func newSpreadsheetCreateCmd() *cobra.Command {
	var sheetNames []string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGateway(cmd, func(ctx context.Context, gw *gateway.Gateway, metrics *instrumentation.Metrics) error {
				api, err := gw.Sheets()
				if err != nil {
					return err
				}
				s, err := spreadsheet.Create(ctx, api, args[0], sheetNames)
				if err != nil {
					return err
				}
				metrics.RecordObjectCreated(ctx, instrumentation.KindSpreadsheet)
				return printSpreadsheet(cmd.OutOrStdout(), s)
			})
		},
	}

	cmd.Flags().StringSliceVar(&sheetNames, "sheet", nil, "Sheet names (default: Sheet1)")
	return cmd
}

func newSpreadsheetGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <spreadsheet-id>",
		Short: "Show the title and sheets of a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGateway(cmd, func(ctx context.Context, gw *gateway.Gateway, _ *instrumentation.Metrics) error {
				api, err := gw.Sheets()
				if err != nil {
					return err
				}
				s, err := spreadsheet.Get(ctx, api, args[0])
				if err != nil {
					return err
				}
				return printSpreadsheet(cmd.OutOrStdout(), s)
			})
		},
	}
}

func newSpreadsheetSheetsCmd(use, short string, apply func(context.Context, *spreadsheet.Spreadsheet, *gateway.Gateway, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <spreadsheet-id> <sheet>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGateway(cmd, func(ctx context.Context, gw *gateway.Gateway, _ *instrumentation.Metrics) error {
				api, err := gw.Sheets()
				if err != nil {
					return err
				}
				s, err := spreadsheet.Get(ctx, api, args[0])
				if err != nil {
					return err
				}
				if err := apply(ctx, s, gw, args[1:]); err != nil {
					return err
				}
				return printSpreadsheet(cmd.OutOrStdout(), s)
			})
		},
	}
}

func printSpreadsheet(w io.Writer, s *spreadsheet.Spreadsheet) error {
	id, err := s.ID()
	if err != nil {
		return err
	}
	sheetIDs, err := s.Sheets()
	if err != nil {
		return err
	}
	names, err := s.SheetNames()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s\t%s\n", id, s.Title())
	for _, name := range names {
		fmt.Fprintf(w, "  %d\t%s\n", sheetIDs[name], name)
	}
	return nil
}
