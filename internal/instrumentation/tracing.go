package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of gslides spans.
const TracerName = "github.com/teemow/gslides"

// Span attribute keys.
const (
	SpanAttrService      = "google.service"
	SpanAttrOperation    = "google.operation"
	SpanAttrDocumentType = "gslides.document_type"
	SpanAttrDocumentID   = "gslides.document_id"
	SpanAttrRequestCount = "gslides.request_count"
	SpanAttrCount        = "gslides.count"
)

// Document describes the spreadsheet or presentation a call works on. An
// empty id, as on create, is left out.
func Document(documentType, id string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String(SpanAttrDocumentType, documentType)}
	if id != "" {
		attrs = append(attrs, attribute.String(SpanAttrDocumentID, id))
	}
	return attrs
}

// RequestCount is the number of requests in one batchUpdate call.
func RequestCount(n int) attribute.KeyValue {
	return attribute.Int(SpanAttrRequestCount, n)
}

// Count annotates a span with the number of objects of a kind, e.g.
// gslides.count.chart.
func Count(kind string, n int) attribute.KeyValue {
	return attribute.Int(SpanAttrCount+"."+kind, n)
}

// StartSpan starts an internal span. End it with span.End.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartGoogleAPISpan starts a client span named google.<service>.<operation>.
func StartGoogleAPISpan(ctx context.Context, service, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append([]attribute.KeyValue{
		attribute.String(SpanAttrService, service),
		attribute.String(SpanAttrOperation, operation),
	}, attrs...)

	return otel.Tracer(TracerName).Start(ctx, "google."+service+"."+operation,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpan sets the span status from err and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
