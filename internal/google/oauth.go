package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultAccount is the account name used when none is given.
const DefaultAccount = "default"

var accountNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName restricts account names to characters that are safe in
// a file name.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if !accountNamePattern.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, '-' and '_' are allowed", account)
	}
	return nil
}

func tokenCacheDir() string {
	return filepath.Join(userCacheDir(), "gslides")
}

// getTokenFilePath returns the token cache file for an account.
func getTokenFilePath(account string) string {
	return filepath.Join(tokenCacheDir(), fmt.Sprintf("google-%s.token", account))
}

// HasTokenForAccount reports whether a cached token exists for the account.
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.Stat(getTokenFilePath(account))
	return err == nil
}

// GetAuthenticationErrorMessage returns the hint shown when an account has
// no usable token.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("no Google OAuth token for account %q: run 'gslides auth url --account %s' and then 'gslides auth save --account %s <code>'",
		account, account, account)
}

// isServiceAccount reports whether a credentials file holds a service account key.
func isServiceAccount(data []byte) bool {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Type == "service_account"
}

func readCredentials(credentialsFile string) ([]byte, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("no credentials file configured")
	}
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}

// oauthConfig returns the installed-app OAuth2 configuration from a client
// secrets file downloaded from the Google Cloud console.
func oauthConfig(data []byte) (*oauth2.Config, error) {
	conf, err := google.ConfigFromJSON(data, DefaultOAuthScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OAuth client credentials: %w", err)
	}
	return conf, nil
}

func loadToken(account string) (*oauth2.Token, error) {
	data, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, errors.New(GetAuthenticationErrorMessage(account))
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token file for account %q: %w", account, err)
	}
	return &token, nil
}

func saveToken(account string, token *oauth2.Token) error {
	if err := os.MkdirAll(tokenCacheDir(), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(getTokenFilePath(account), data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// newHTTPClient wraps a token source into an HTTP client.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors.
func newHTTPClient(ctx context.Context, ts oauth2.TokenSource) *http.Client {
	client := oauth2.NewClient(ctx, ts)

	if transport, ok := client.Transport.(*oauth2.Transport); ok {
		transport.Base = &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			ForceAttemptHTTP2: false,
		}
	}

	return client
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		return homeDir()
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
