package instrumentation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Observe runs fn inside a google.<service>.<operation> client span and
// records the call count and duration. A nil metrics recorder only skips the
// metrics.
//
//	err := instrumentation.Observe(ctx, m, instrumentation.ServiceSheets, instrumentation.OperationGet,
//		func(ctx context.Context) error {
//			resp, err = call.Context(ctx).Do()
//			return err
//		}, instrumentation.Document("spreadsheet", id)...)
func Observe(ctx context.Context, metrics *Metrics, service, operation string, fn func(context.Context) error, attrs ...attribute.KeyValue) (err error) {
	ctx, span := StartGoogleAPISpan(ctx, service, operation, attrs...)
	defer func() { EndSpan(span, err) }()

	start := time.Now()
	err = fn(ctx)

	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	metrics.RecordGoogleAPIOperation(ctx, service, operation, status, time.Since(start))
	return err
}
