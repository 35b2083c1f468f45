// Package gateway builds the Sheets and Slides clients once from a credential
// and hands them to the domain packages.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/api/option"

	"github.com/teemow/gslides/internal/errs"
	"github.com/teemow/gslides/internal/google"
	"github.com/teemow/gslides/internal/instrumentation"
	"github.com/teemow/gslides/internal/sheets"
	"github.com/teemow/gslides/internal/slides"
)

// Options configures New.
type Options struct {
	Account       string
	Metrics       *instrumentation.Metrics
	Logger        *slog.Logger
	ClientOptions []option.ClientOption
}

// Gateway holds the API clients of one credential.
type Gateway struct {
	account string
	sheets  sheets.API
	slides  slides.API
}

// New authorizes an HTTP client for the account and builds both API clients.
func New(ctx context.Context, provider google.TokenProvider, opts Options) (*Gateway, error) {
	if opts.Account == "" {
		opts.Account = google.DefaultAccount
	}

	httpClient, err := google.GetHTTPClient(ctx, provider, opts.Account)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize account %s: %w", opts.Account, err)
	}

	return NewWithHTTPClient(ctx, httpClient, opts)
}

// NewWithHTTPClient builds both API clients on an already authorized client.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts Options) (*Gateway, error) {
	sheetsClient, err := sheets.NewClient(ctx, sheets.Config{
		HTTPClient:    httpClient,
		Metrics:       opts.Metrics,
		Logger:        opts.Logger,
		ClientOptions: opts.ClientOptions,
	})
	if err != nil {
		return nil, err
	}

	slidesClient, err := slides.NewClient(ctx, slides.Config{
		HTTPClient:    httpClient,
		Metrics:       opts.Metrics,
		Logger:        opts.Logger,
		ClientOptions: opts.ClientOptions,
	})
	if err != nil {
		return nil, err
	}

	return &Gateway{
		account: opts.Account,
		sheets:  sheetsClient,
		slides:  slidesClient,
	}, nil
}

// FromClients wraps existing clients, e.g. fakes in tests.
func FromClients(sheetsAPI sheets.API, slidesAPI slides.API) *Gateway {
	return &Gateway{sheets: sheetsAPI, slides: slidesAPI}
}

// Account returns the account the gateway was authorized for.
func (g *Gateway) Account() string {
	return g.account
}

// Sheets returns the Sheets client.
func (g *Gateway) Sheets() (sheets.API, error) {
	if g == nil || g.sheets == nil {
		return nil, fmt.Errorf("sheets client: %w", errs.ErrNotInitialized)
	}
	return g.sheets, nil
}

// Slides returns the Slides client.
func (g *Gateway) Slides() (slides.API, error) {
	if g == nil || g.slides == nil {
		return nil, fmt.Errorf("slides client: %w", errs.ErrNotInitialized)
	}
	return g.slides, nil
}
