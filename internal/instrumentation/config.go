package instrumentation

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"
)

// Config holds the instrumentation settings of one gslides run.
type Config struct {
	// ServiceName defaults to gslides.
	ServiceName    string
	ServiceVersion string

	// Enabled switches metrics and tracing off entirely (INSTRUMENTATION_ENABLED).
	Enabled bool

	// MetricsExporter is prometheus, otlp or stdout.
	MetricsExporter string

	// TracingExporter is otlp, stdout or none.
	TracingExporter string

	// OTLPEndpoint is host:port without a scheme, e.g. localhost:4318.
	OTLPEndpoint string

	// OTLPInsecure sends OTLP over plain HTTP. Local collectors only.
	OTLPInsecure bool

	// TraceSamplingRate is between 0 and 1.
	TraceSamplingRate float64

	// ExportInterval is how often the periodic readers of the otlp and
	// stdout metrics exporters push. Short runs still flush on Shutdown.
	ExportInterval time.Duration

	// DetailedLabels adds the account label to OAuth metrics.
	DetailedLabels bool

	// TextfilePath is where WriteTextfile writes a Prometheus snapshot when a
	// command finishes. Empty disables the snapshot.
	TextfilePath string
}

// DefaultConfig reads the configuration from the environment.
func DefaultConfig() Config {
	return Config{
		ServiceName:       envString("OTEL_SERVICE_NAME", "gslides"),
		ServiceVersion:    "unknown",
		Enabled:           envBool("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   envString("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   envString("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: envFloat("OTEL_TRACES_SAMPLER_ARG", 0.1),
		ExportInterval:    envDuration("METRICS_EXPORT_INTERVAL", DefaultExportInterval),
		DetailedLabels:    envBool("METRICS_DETAILED_LABELS", false),
		TextfilePath:      envString("METRICS_TEXTFILE", ""),
	}
}

var (
	metricsExporters = []string{ExporterPrometheus, ExporterOTLP, ExporterStdout}
	tracingExporters = []string{ExporterOTLP, ExporterStdout, ExporterNone}
)

// Validate checks exporter names, the sampling rate and the OTLP endpoint.
// Empty exporter names are accepted and resolved by NewProvider.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}
	if c.MetricsExporter != "" && !slices.Contains(metricsExporters, c.MetricsExporter) {
		return fmt.Errorf("invalid metrics exporter %q, must be one of: %v", c.MetricsExporter, metricsExporters)
	}
	if c.TracingExporter != "" && !slices.Contains(tracingExporters, c.TracingExporter) {
		return fmt.Errorf("invalid tracing exporter %q, must be one of: %v", c.TracingExporter, tracingExporters)
	}
	if c.OTLPEndpoint == "" && (c.TracingExporter == ExporterOTLP || c.MetricsExporter == ExporterOTLP) {
		return fmt.Errorf("OTLP endpoint is required for the otlp exporter; set OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if c.ExportInterval < 0 {
		return fmt.Errorf("metrics export interval must not be negative, got %s", c.ExportInterval)
	}
	return nil
}

// withDefaults fills the exporter names and interval left empty.
func (c Config) withDefaults() Config {
	if c.ServiceName == "" {
		c.ServiceName = "gslides"
	}
	if c.MetricsExporter == "" {
		c.MetricsExporter = ExporterPrometheus
	}
	if c.TracingExporter == "" {
		c.TracingExporter = ExporterNone
	}
	if c.ExportInterval == 0 {
		c.ExportInterval = DefaultExportInterval
	}
	return c
}

// env returns the parsed value of key, or def when it is unset or does not
// parse.
func env[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func envString(key, def string) string {
	return env(key, def, func(s string) (string, error) { return s, nil })
}

func envBool(key string, def bool) bool {
	return env(key, def, strconv.ParseBool)
}

func envFloat(key string, def float64) float64 {
	return env(key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func envDuration(key string, def time.Duration) time.Duration {
	return env(key, def, time.ParseDuration)
}

// Metric label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"

	ServiceSheets = "sheets"
	ServiceSlides = "slides"

	OperationGet          = "get"
	OperationCreate       = "create"
	OperationBatchUpdate  = "batch_update"
	OperationValuesGet    = "values_get"
	OperationValuesUpdate = "values_batch_update"

	// Kinds counted by RecordObjectCreated.
	KindFrame        = "frame"
	KindChart        = "chart"
	KindTable        = "table"
	KindSlide        = "slide"
	KindSheet        = "sheet"
	KindSpreadsheet  = "spreadsheet"
	KindPresentation = "presentation"

	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"

	DefaultExportInterval = 10 * time.Second
)
