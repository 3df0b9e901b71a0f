// Package apperr defines the error kinds shared across modules. Handlers map
// them to HTTP status codes with errors.Is; services wrap them with context.
package apperr

import "errors"

var (
	// ErrLoadFailure marks malformed persisted data. Callers fall back to an
	// empty collection instead of failing the request.
	ErrLoadFailure = errors.New("failed to load persisted data")

	// ErrValidation marks a create/update rejected for missing or invalid fields.
	ErrValidation = errors.New("validation failed")

	// ErrImportFormat marks an uploaded document that does not match the
	// expected bundle shape. The import is rejected atomically.
	ErrImportFormat = errors.New("import document has unexpected shape")

	// ErrPrecondition marks an action invoked on an entity whose current state
	// does not permit it, e.g. cancelling a non-pending order.
	ErrPrecondition = errors.New("action not permitted in current state")

	ErrNotFound = errors.New("not found")
)
