package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/teemow/gslides/internal/gateway"
	"github.com/teemow/gslides/internal/instrumentation"
	"github.com/teemow/gslides/internal/manifest"
)

func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Build decks from manifests",
	}
	cmd.AddCommand(newDeckBuildCmd())
	return cmd
}

func newDeckBuildCmd() *cobra.Command {
	var validateOnly bool

	cmd := &cobra.Command{
		Use:   "build <manifest.yaml>",
		Short: "Upload data and build the charts, tables and slides of a manifest",
		Long: `Build the deck described by a YAML manifest: the data files are uploaded
to the spreadsheet, charts and tables are built on them and placed on new
slides of the presentation. Spreadsheets and presentations are created unless
the manifest names an existing id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			if validateOnly {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
				return nil
			}

			return withGateway(cmd, func(ctx context.Context, gw *gateway.Gateway, metrics *instrumentation.Metrics) error {
				sheetsAPI, err := gw.Sheets()
				if err != nil {
					return err
				}
				slidesAPI, err := gw.Slides()
				if err != nil {
					return err
				}

				b := &manifest.Builder{
					Sheets:  sheetsAPI,
					Slides:  slidesAPI,
					Style:   current.style,
					Metrics: metrics,
					Logger:  current.logger,
				}
				result, err := b.Build(ctx, m)
				if err != nil {
					return err
				}
				printResult(cmd, result)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&validateOnly, "validate", false, "Only check the manifest")
	return cmd
}

func printResult(cmd *cobra.Command, r *manifest.Result) {
	w := cmd.OutOrStdout()
	if r.SpreadsheetID != "" {
		fmt.Fprintf(w, "spreadsheet\t%s\n", r.SpreadsheetID)
	}
	if r.PresentationID != "" {
		fmt.Fprintf(w, "presentation\t%s\n", r.PresentationID)
	}
	names := make([]string, 0, len(r.ChartIDs))
	for name := range r.ChartIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "chart\t%s\t%d\n", name, r.ChartIDs[name])
	}
	for _, id := range r.SlideIDs {
		fmt.Fprintf(w, "slide\t%s\n", id)
	}
}
