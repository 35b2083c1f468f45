package gateway

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/teemow/gslides/internal/errs"
	"github.com/teemow/gslides/internal/google"
)

func TestGateway_NotInitialized(t *testing.T) {
	var g *Gateway

	_, err := g.Sheets()
	assert.ErrorIs(t, err, errs.ErrNotInitialized)

	_, err = g.Slides()
	assert.ErrorIs(t, err, errs.ErrNotInitialized)

	_, err = FromClients(nil, nil).Sheets()
	assert.ErrorIs(t, err, errs.ErrNotInitialized)
}

func TestNew(t *testing.T) {
	provider := google.StaticTokenProvider{Token: &oauth2.Token{AccessToken: "tok"}}

	g, err := New(context.Background(), provider, Options{
		Account:       "work",
		ClientOptions: []option.ClientOption{option.WithEndpoint("http://127.0.0.1:1/")},
	})
	require.NoError(t, err)
	assert.Equal(t, "work", g.Account())

	sheetsAPI, err := g.Sheets()
	require.NoError(t, err)
	assert.NotNil(t, sheetsAPI)

	slidesAPI, err := g.Slides()
	require.NoError(t, err)
	assert.NotNil(t, slidesAPI)
}

func TestNew_NoCredentials(t *testing.T) {
	_, err := New(context.Background(), google.StaticTokenProvider{}, Options{})
	assert.Error(t, err)
}

func TestNewWithHTTPClient(t *testing.T) {
	g, err := NewWithHTTPClient(context.Background(), http.DefaultClient, Options{})
	require.NoError(t, err)

	_, err = g.Slides()
	assert.NoError(t, err)
}
