package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/teemow/gslides/internal/errs"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the settings file",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings after environment and flag overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSettings(cmd.OutOrStdout(), current.settings)
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective settings to the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath
			if path == "" {
				return fmt.Errorf("%w: no settings path, pass --config", errs.ErrInvalidConfig)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s already exists, use --force to overwrite", errs.ErrConflict, path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := current.settings.Save(path); err != nil {
				return err
			}
			current.logger.Info("wrote settings", "path", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing settings file")
	return cmd
}

func printSettings(w io.Writer, settings any) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = w.Write(data)
	return err
}
