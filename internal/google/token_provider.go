package google

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TokenProvider supplies OAuth token sources for Google APIs.
// This abstraction allows different credential sources (cached user tokens,
// service accounts, fixed tokens in tests).
type TokenProvider interface {
	// TokenSourceForAccount returns a token source for the specified account
	TokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error)

	// HasTokenForAccount checks if credentials exist for the specified account
	HasTokenForAccount(account string) bool
}

// FileTokenProvider reads a credentials file from disk. A service account key
// is used directly; an OAuth client secrets file is combined with the cached
// user token of the account.
type FileTokenProvider struct {
	CredentialsFile string
}

// NewFileTokenProvider creates a new file-based token provider
func NewFileTokenProvider(credentialsFile string) *FileTokenProvider {
	return &FileTokenProvider{CredentialsFile: credentialsFile}
}

// TokenSourceForAccount implements TokenProvider.
func (p *FileTokenProvider) TokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	data, err := readCredentials(p.CredentialsFile)
	if err != nil {
		return nil, err
	}

	if isServiceAccount(data) {
		conf, err := google.JWTConfigFromJSON(data, DefaultOAuthScopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
		}
		return conf.TokenSource(ctx), nil
	}

	if err := validateAccountName(account); err != nil {
		return nil, err
	}
	conf, err := oauthConfig(data)
	if err != nil {
		return nil, err
	}
	token, err := loadToken(account)
	if err != nil {
		return nil, err
	}
	return conf.TokenSource(ctx, token), nil
}

// HasTokenForAccount implements TokenProvider. Service accounts never need a
// cached token.
func (p *FileTokenProvider) HasTokenForAccount(account string) bool {
	if data, err := readCredentials(p.CredentialsFile); err == nil && isServiceAccount(data) {
		return true
	}
	return HasTokenForAccount(account)
}

// AuthURL returns the URL the user visits to authorize gslides.
func (p *FileTokenProvider) AuthURL() (string, error) {
	data, err := readCredentials(p.CredentialsFile)
	if err != nil {
		return "", err
	}
	if isServiceAccount(data) {
		return "", fmt.Errorf("service account credentials do not need authorization")
	}
	conf, err := oauthConfig(data)
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// SaveToken exchanges an authorization code for tokens and caches them for
// the account.
func (p *FileTokenProvider) SaveToken(ctx context.Context, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}
	data, err := readCredentials(p.CredentialsFile)
	if err != nil {
		return err
	}
	conf, err := oauthConfig(data)
	if err != nil {
		return err
	}

	token, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	return saveToken(account, token)
}

// StaticTokenProvider serves one fixed token for every account.
type StaticTokenProvider struct {
	Token *oauth2.Token
}

// TokenSourceForAccount implements TokenProvider.
func (p StaticTokenProvider) TokenSourceForAccount(_ context.Context, _ string) (oauth2.TokenSource, error) {
	if p.Token == nil {
		return nil, fmt.Errorf("no static token configured")
	}
	return oauth2.StaticTokenSource(p.Token), nil
}

// HasTokenForAccount implements TokenProvider.
func (p StaticTokenProvider) HasTokenForAccount(string) bool {
	return p.Token != nil
}

// GetHTTPClient returns an HTTP client authorized for the account.
func GetHTTPClient(ctx context.Context, provider TokenProvider, account string) (*http.Client, error) {
	ts, err := provider.TokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	return newHTTPClient(ctx, ts), nil
}
