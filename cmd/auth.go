package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/gslides/internal/google"
	"github.com/teemow/gslides/internal/instrumentation"
	"github.com/teemow/gslides/internal/logging"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize gslides for a Google account",
		Long: `Run 'gslides auth url', open the printed URL, grant access and pass the
code shown by Google to 'gslides auth save'. The token is cached per account.
Service account credentials need no authorization.`,
	}
	cmd.AddCommand(newAuthURLCmd())
	cmd.AddCommand(newAuthSaveCmd())
	return cmd
}

func newAuthURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the authorization URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := google.NewFileTokenProvider(current.settings.CredentialsFile).AuthURL()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func newAuthSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <code>",
		Short: "Exchange an authorization code and cache the token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version
			provider, err := instrumentation.NewProvider(ctx, instrConfig)
			if err != nil {
				return fmt.Errorf("failed to create instrumentation provider: %w", err)
			}
			defer func() { _ = provider.Shutdown(ctx) }()

			account := current.settings.Account
			logger := logging.WithAccount(current.logger, account)
			logger.Debug("exchanging authorization code", "code", logging.SanitizeToken(args[0]))

			tokens := google.NewFileTokenProvider(current.settings.CredentialsFile)
			if err := tokens.SaveToken(ctx, account, args[0]); err != nil {
				provider.Metrics().RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure, account)
				return err
			}
			provider.Metrics().RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess, account)
			logger.Info("saved token")
			return provider.WriteTextfile()
		},
	}
}
