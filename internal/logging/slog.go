package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation    = "operation"
	KeyService      = "service"
	KeyAccount      = "account"
	KeyDuration     = "duration"
	KeyStatus       = "status"
	KeyError        = "error"
	KeySpreadsheet  = "spreadsheet_id"
	KeyPresentation = "presentation_id"
	KeyObject       = "object_id"
	KeyRequest      = "request"
)

// Status values, matching the instrumentation metric labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Format selects the handler used by New.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New returns a logger writing to w. Debug enables debug records, which
// include full request bodies.
func New(w io.Writer, format Format, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// OrDefault returns logger, or slog.Default() when logger is nil.
func OrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(Operation(operation))
}

// WithService returns a logger with the service attribute set.
func WithService(logger *slog.Logger, service string) *slog.Logger {
	return logger.With(Service(service))
}

// WithAccount returns a logger with the account attribute set.
func WithAccount(logger *slog.Logger, account string) *slog.Logger {
	return logger.With(Account(account))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Service returns a slog attribute for the service name.
func Service(svc string) slog.Attr {
	return slog.String(KeyService, svc)
}

// Account returns a slog attribute for the account name.
func Account(account string) slog.Attr {
	return slog.String(KeyAccount, account)
}

// Duration returns a slog attribute for an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Spreadsheet returns a slog attribute for a spreadsheet id.
func Spreadsheet(id string) slog.Attr {
	return slog.String(KeySpreadsheet, id)
}

// Presentation returns a slog attribute for a presentation id.
func Presentation(id string) slog.Attr {
	return slog.String(KeyPresentation, id)
}

// Object returns a slog attribute for a created chart, slide or table id.
func Object(id any) slog.Attr {
	return slog.String(KeyObject, fmt.Sprint(id))
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
//
// Usage:
//
//	logger.Info("operation", logging.Err(err))  // Safe even if err is nil
func Err(err error) slog.Attr {
	if err == nil {
		// Return an empty Group that slog will omit from output
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// Request returns a slog attribute holding the JSON form of a request body.
// The encoding is deferred until a handler actually emits the record, so
// debug dumps cost nothing at info level.
func Request(body any) slog.Attr {
	return slog.Any(KeyRequest, requestValue{body: body})
}

type requestValue struct {
	body any
}

func (r requestValue) LogValue() slog.Value {
	data, err := json.Marshal(r.body)
	if err != nil {
		return slog.StringValue(fmt.Sprintf("<unencodable request: %v>", err))
	}
	return slog.StringValue(string(data))
}

// SanitizeToken returns a masked version of a token for logging.
// It returns a length indicator without exposing any token content,
// as even partial token prefixes (like JWT headers) can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
