package instrumentation

import (
	"fmt"
	"log/slog"

	promclient "github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes the collected metrics to the configured textfile path
// in the Prometheus text format, for a node exporter textfile collector. It
// does nothing without a path, and only warns when metrics go to another
// exporter.
func (p *Provider) WriteTextfile() error {
	if p == nil || p.config.TextfilePath == "" {
		return nil
	}
	if p.registry == nil {
		slog.Warn("metrics textfile needs the prometheus exporter, skipping",
			"component", "instrumentation",
			"exporter", p.config.MetricsExporter,
			"path", p.config.TextfilePath,
		)
		return nil
	}
	if err := promclient.WriteToTextfile(p.config.TextfilePath, p.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", p.config.TextfilePath, err)
	}
	return nil
}
