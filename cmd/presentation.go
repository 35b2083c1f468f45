package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teemow/gslides/internal/gateway"
	"github.com/teemow/gslides/internal/instrumentation"
	"github.com/teemow/gslides/internal/presentation"
)

func newPresentationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presentation",
		Short: "Create presentations and manage their slides",
	}
	cmd.AddCommand(newPresentationCreateCmd())
	cmd.AddCommand(newPresentationGetCmd())
	cmd.AddCommand(newPresentationRemoveSlideCmd())
	return cmd
}

func newPresentationCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <title>",
		Short: "Create an empty presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGateway(cmd, func(ctx context.Context, gw *gateway.Gateway, metrics *instrumentation.Metrics) error {
				api, err := gw.Slides()
				if err != nil {
					return err
				}
				p, err := presentation.Create(ctx, api, args[0])
				if err != nil {
					return err
				}
				metrics.RecordObjectCreated(ctx, instrumentation.KindPresentation)
				return printPresentation(cmd.OutOrStdout(), p)
			})
		},
	}
}

func newPresentationGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <presentation-id>",
		Short: "Show the title and slides of a presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGateway(cmd, func(ctx context.Context, gw *gateway.Gateway, _ *instrumentation.Metrics) error {
				api, err := gw.Slides()
				if err != nil {
					return err
				}
				p, err := presentation.Get(ctx, api, args[0])
				if err != nil {
					return err
				}
				return printPresentation(cmd.OutOrStdout(), p)
			})
		},
	}
}

func newPresentationRemoveSlideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-slide <presentation-id> <slide-id>...",
		Short: "Delete slides",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGateway(cmd, func(ctx context.Context, gw *gateway.Gateway, _ *instrumentation.Metrics) error {
				api, err := gw.Slides()
				if err != nil {
					return err
				}
				p, err := presentation.Get(ctx, api, args[0])
				if err != nil {
					return err
				}
				for _, id := range args[1:] {
					if err := p.RemoveSlide(ctx, id); err != nil {
						return err
					}
				}
				return printPresentation(cmd.OutOrStdout(), p)
			})
		},
	}
}

func printPresentation(w io.Writer, p *presentation.Presentation) error {
	id, err := p.ID()
	if err != nil {
		return err
	}
	slideIDs, err := p.SlideIDs()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s\t%s\n", id, p.Title())
	for i, s := range slideIDs {
		fmt.Fprintf(w, "  %d\t%s\n", i, s)
	}
	return nil
}
