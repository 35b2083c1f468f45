// Package instrumentation provides OpenTelemetry instrumentation for gslides.
//
// This package enables observability of the Google Sheets and Slides calls
// made while building spreadsheets and decks:
//   - OpenTelemetry metrics for Google API operations and created objects
//   - Distributed tracing for API calls (google.<service>.<operation>)
//   - Prometheus textfile snapshots for batch runs (METRICS_TEXTFILE)
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Google API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//   - google_api_batch_requests: Histogram of requests per batchUpdate call
//
// Domain Metrics:
//   - gslides_objects_created_total: Counter of frames, charts, tables, slides by kind
//   - oauth_auth_total: Counter of authorization code exchanges by result
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: gslides)
//   - METRICS_EXPORT_INTERVAL: Push interval of the otlp and stdout exporters (default: 10s)
//   - METRICS_TEXTFILE: Path of a Prometheus textfile written when a command finishes
//
// The prometheus exporter gathers into a registry owned by the Provider,
// together with the Go runtime and process collectors.
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	err = instrumentation.Observe(ctx, provider.Metrics(),
//		instrumentation.ServiceSheets, instrumentation.OperationGet,
//		func(ctx context.Context) error { ... })
//
//	// At the end of a batch command
//	_ = provider.WriteTextfile()
package instrumentation
