package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrKind      = "kind"
	attrAccount   = "account"
)

var (
	durationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
	batchBuckets    = []float64{1, 2, 5, 10, 25, 50, 100, 250, 500}
)

// Metrics records gslides metrics. The zero value and a nil *Metrics
// record nothing.
type Metrics struct {
	apiCalls       metric.Int64Counter
	apiDuration    metric.Float64Histogram
	batchRequests  metric.Int64Histogram
	objectsCreated metric.Int64Counter
	oauthExchanges metric.Int64Counter

	detailedLabels bool
}

// NewMetrics creates the instruments on meter. detailedLabels adds the
// account to the OAuth counter.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	counters := []struct {
		dst        *metric.Int64Counter
		name, desc string
		unit       string
	}{
		{&m.apiCalls, "google_api_operations_total", "Google Sheets and Slides API calls", "{operation}"},
		{&m.objectsCreated, "gslides_objects_created_total", "Frames, charts, tables, slides and documents created", "{object}"},
		{&m.oauthExchanges, "oauth_auth_total", "OAuth authorization code exchanges", "{attempt}"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
		*c.dst = counter
	}

	var err error
	m.apiDuration, err = meter.Float64Histogram("google_api_operation_duration_seconds",
		metric.WithDescription("Google API call duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operation_duration_seconds histogram: %w", err)
	}

	m.batchRequests, err = meter.Int64Histogram("google_api_batch_requests",
		metric.WithDescription("Requests sent in one batchUpdate call"),
		metric.WithUnit("{request}"),
		metric.WithExplicitBucketBoundaries(batchBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_batch_requests histogram: %w", err)
	}
	return m, nil
}

// RecordGoogleAPIOperation counts one API call and records its duration.
// Status is StatusSuccess or StatusError.
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m == nil || m.apiCalls == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.apiCalls.Add(ctx, 1, attrs)
	m.apiDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordBatchSize records how many requests a batchUpdate call carried.
func (m *Metrics) RecordBatchSize(ctx context.Context, service string, size int) {
	if m == nil || m.batchRequests == nil {
		return
	}
	m.batchRequests.Record(ctx, int64(size), metric.WithAttributes(attribute.String(attrService, service)))
}

// RecordObjectCreated counts a created object. Kind is one of the Kind*
// constants.
func (m *Metrics) RecordObjectCreated(ctx context.Context, kind string) {
	if m == nil || m.objectsCreated == nil {
		return
	}
	m.objectsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String(attrKind, kind)))
}

// RecordOAuthAuth counts an authorization code exchange.
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result, account string) {
	if m == nil || m.oauthExchanges == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(attrResult, result)}
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}
	m.oauthExchanges.Add(ctx, 1, metric.WithAttributes(attrs...))
}
