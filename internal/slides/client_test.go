package slides

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	slides "google.golang.org/api/slides/v1"

	"github.com/teemow/gslides/internal/logging"
)

type recorder struct {
	mu       sync.Mutex
	requests []map[string]any
}

func (r *recorder) add(body map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, body)
}

func (r *recorder) all() []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests
}

func newTestClient(t *testing.T, cfg Config) (*Client, *recorder) {
	t.Helper()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			rec.add(body)
		}

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/presentations":
			_, _ = w.Write([]byte(`{"presentationId":"pr1","title":"Deck","slides":[{"objectId":"p"}]}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/presentations/pr1":
			_, _ = w.Write([]byte(`{"presentationId":"pr1","title":"Deck","slides":[{"objectId":"s1"},{"objectId":"s2"}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/presentations/pr1:batchUpdate":
			_, _ = w.Write([]byte(`{"presentationId":"pr1","replies":[{"createTable":{"objectId":"tbl1"}}]}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
		}
	}))
	t.Cleanup(server.Close)

	cfg.ClientOptions = append(cfg.ClientOptions,
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
	)
	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)

	return client, rec
}

func TestClient_CreateAndGet(t *testing.T) {
	client, rec := newTestClient(t, Config{})
	ctx := context.Background()

	created, err := client.Create(ctx, &slides.Presentation{Title: "Deck"})
	require.NoError(t, err)
	assert.Equal(t, "pr1", created.PresentationId)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, "Deck", rec.all()[0]["title"])

	got, err := client.Get(ctx, "pr1")
	require.NoError(t, err)
	require.Len(t, got.Slides, 2)
	assert.Equal(t, "s2", got.Slides[1].ObjectId)
}

func TestClient_BatchUpdateLogsRequestAtDebug(t *testing.T) {
	var buf bytes.Buffer
	client, rec := newTestClient(t, Config{Logger: logging.New(&buf, logging.FormatText, true)})

	resp, err := client.BatchUpdate(context.Background(), "pr1", []*slides.Request{
		{DeleteObject: &slides.DeleteObjectRequest{ObjectId: "p"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "tbl1", resp.Replies[0].CreateTable.ObjectId)

	require.Len(t, rec.all(), 1)
	assert.Contains(t, buf.String(), "deleteObject")
	assert.Contains(t, buf.String(), "service=slides")
}

func TestClient_Errors(t *testing.T) {
	client, _ := newTestClient(t, Config{Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))})

	_, err := client.Get(context.Background(), "other")
	require.Error(t, err)

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
}
