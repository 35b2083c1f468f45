package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/teemow/gslides/internal/config"
	"github.com/teemow/gslides/internal/gateway"
	"github.com/teemow/gslides/internal/google"
	"github.com/teemow/gslides/internal/instrumentation"
	"github.com/teemow/gslides/internal/logging"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	account     string
	credentials string
	configPath  string
	debug       bool
	jsonLogs    bool
	font        string
	palette     string
}

var flags globalFlags

// session carries what the commands need once the flags are parsed.
type session struct {
	settings config.Settings
	style    config.Style
	logger   *slog.Logger
}

var current session

// rootCmd represents the base command for the gslides application
var rootCmd = &cobra.Command{
	Use:   "gslides",
	Short: "Build Google Slides decks from tabular data",
	Long: `gslides uploads tabular data to Google Sheets, builds charts and tables
on it and places them on Google Slides.

Settings are read from ~/.gslides/config.toml, overridden by GSLIDES_*
environment variables and by the flags below.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gslides version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.account, "account", "", "Google account name whose cached token is used (default: 'default')")
	pf.StringVar(&flags.credentials, "credentials", "", "OAuth client or service account JSON file")
	pf.StringVar(&flags.configPath, "config", config.DefaultPath(), "Settings file")
	pf.BoolVar(&flags.debug, "debug", false, "Log request bodies and other debug output")
	pf.BoolVar(&flags.jsonLogs, "json-logs", false, "Write logs as JSON")
	pf.StringVar(&flags.font, "font", "", "Font for titles, labels and tables")
	pf.StringVar(&flags.palette, "palette", "", "Default chart palette")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSpreadsheetCmd())
	rootCmd.AddCommand(newFrameCmd())
	rootCmd.AddCommand(newPresentationCmd())
	rootCmd.AddCommand(newDeckCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// setup loads the settings, applies the flags and installs the logger.
func setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.account != "" {
		settings.Account = flags.account
	}
	if flags.credentials != "" {
		settings.CredentialsFile = flags.credentials
	}
	if flags.font != "" {
		settings.Font = flags.font
	}
	if flags.palette != "" {
		settings.Palette = flags.palette
	}

	style, err := settings.Style()
	if err != nil {
		return err
	}

	format := logging.FormatText
	if flags.jsonLogs {
		format = logging.FormatJSON
	}
	logger := logging.New(cmd.ErrOrStderr(), format, flags.debug)
	slog.SetDefault(logger)

	current = session{settings: settings, style: style, logger: logger}
	return nil
}

// withGateway runs fn with API clients authorized for the configured
// account. Metrics are written to the textfile, when configured, after fn
// returns.
func withGateway(cmd *cobra.Command, fn func(ctx context.Context, gw *gateway.Gateway, metrics *instrumentation.Metrics) error) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			current.logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	tokens := tokenProvider(current.settings)
	if !tokens.HasTokenForAccount(current.settings.Account) {
		return errors.New(google.GetAuthenticationErrorMessage(current.settings.Account))
	}

	gw, err := gateway.New(ctx, tokens, gateway.Options{
		Account: current.settings.Account,
		Metrics: provider.Metrics(),
		Logger:  logging.WithAccount(current.logger, current.settings.Account),
	})
	if err != nil {
		return err
	}

	runErr := fn(ctx, gw, provider.Metrics())
	if err := provider.WriteTextfile(); err != nil {
		current.logger.Warn("failed to write metrics textfile", logging.Err(err))
	}
	return runErr
}

// tokenProvider prefers an access token from the environment, e.g. from
// gcloud auth print-access-token, over the cached per-account tokens.
func tokenProvider(settings config.Settings) google.TokenProvider {
	if token := os.Getenv(config.EnvAccessToken); token != "" {
		return google.StaticTokenProvider{Token: &oauth2.Token{AccessToken: token, TokenType: "Bearer"}}
	}
	return google.NewFileTokenProvider(settings.CredentialsFile)
}
