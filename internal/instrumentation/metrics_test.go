package instrumentation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	ctx, provider := newTestProvider(t)

	metrics := provider.Metrics()
	require.NotNil(t, metrics)

	// Should not panic
	metrics.RecordGoogleAPIOperation(ctx, ServiceSheets, OperationValuesGet, StatusSuccess, 200*time.Millisecond)
	metrics.RecordGoogleAPIOperation(ctx, ServiceSlides, OperationBatchUpdate, StatusError, 500*time.Millisecond)
	metrics.RecordBatchSize(ctx, ServiceSlides, 42)
	metrics.RecordObjectCreated(ctx, KindChart)
	metrics.RecordOAuthAuth(ctx, OAuthResultSuccess, "work")
	metrics.RecordOAuthAuth(ctx, OAuthResultFailure, "")
}

func TestMetrics_NoOp_WhenDisabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Enabled:        false,
	})
	require.NoError(t, err)

	metrics := provider.Metrics()
	require.NotNil(t, metrics, "expected metrics to be non-nil even when disabled")

	// All these should not panic even with nil underlying metrics
	metrics.RecordGoogleAPIOperation(ctx, ServiceSheets, OperationGet, StatusSuccess, 200*time.Millisecond)
	metrics.RecordBatchSize(ctx, ServiceSheets, 1)
	metrics.RecordObjectCreated(ctx, KindSlide)
	metrics.RecordOAuthAuth(ctx, OAuthResultSuccess, "default")

	var nilMetrics *Metrics
	nilMetrics.RecordGoogleAPIOperation(ctx, ServiceSheets, OperationGet, StatusSuccess, time.Millisecond)
}

func TestObserve(t *testing.T) {
	ctx, provider := newTestProvider(t)

	calls := 0
	err := Observe(ctx, provider.Metrics(), ServiceSheets, OperationGet, func(ctx context.Context) error {
		calls++
		assert.NotNil(t, ctx)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	sentinel := errors.New("boom")
	err = Observe(ctx, nil, ServiceSlides, OperationCreate, func(context.Context) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestWriteTextfile(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	path := filepath.Join(t.TempDir(), "gslides.prom")
	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		TracingExporter: ExporterNone,
		TextfilePath:    path,
	})
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	provider.Metrics().RecordGoogleAPIOperation(ctx, ServiceSheets, OperationBatchUpdate, StatusSuccess, 10*time.Millisecond)

	require.NoError(t, provider.WriteTextfile())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "google_api_operations")
}

func TestWriteTextfile_NoPath(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, provider.WriteTextfile())
}

func TestWriteTextfile_WithoutPrometheus(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gslides.prom")

	provider, err := NewProvider(ctx, Config{
		Enabled:         true,
		MetricsExporter: ExporterStdout,
		TextfilePath:    path,
	})
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	require.NoError(t, provider.WriteTextfile())
	assert.NoFileExists(t, path)
}
