// Package logging provides structured logging utilities for gslides.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "sheets.batch_update")
//	logger.Info("chart created",
//	    logging.Spreadsheet(id),
//	    logging.Status(logging.StatusSuccess))
//
// Request bodies are logged at debug level only:
//
//	logger.Debug("executing request", logging.Request(body))
//
// # Security Considerations
//
// OAuth tokens are never logged directly; use SanitizeToken.
package logging
