// Package errs defines the error kinds shared by the gslides builders.
//
// Builders wrap these sentinels with context using fmt.Errorf and %w, so
// callers can branch on the kind with errors.Is while still getting a
// descriptive message.
package errs

import "errors"

var (
	// ErrInvalidConfig indicates a configuration value was rejected at
	// construction time (bad enum value, dependent-field misuse, malformed
	// cell address or color, invalid layout, incompatible series).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotExecuted indicates a derived identifier was requested before the
	// remote operation that produces it completed.
	ErrNotExecuted = errors.New("not executed")

	// ErrConflict indicates a write would overwrite existing remote content.
	ErrConflict = errors.New("conflict")

	// ErrUnsupportedType indicates a value cannot be written to a cell.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotInitialized indicates the API gateway was used before credentials
	// were configured.
	ErrNotInitialized = errors.New("gateway not initialized")
)
