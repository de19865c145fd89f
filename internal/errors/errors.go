package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Using sentinel errors allows services to return specific, recognizable error types
// without coupling them to implementation details like HTTP status codes. The API
// layer can then use `errors.Is()` to check for these specific errors and map
// them to the correct HTTP responses.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrProvider signifies that a direct LLM provider call came back with a
	// non-success status. The concrete error carries the HTTP status code.
	// This is typically mapped to a 502 Bad Gateway HTTP status.
	ErrProvider = errors.New("provider request failed")

	// ErrBackendUnavailable signifies a network failure or non-success status
	// from the proxied backend. The concrete error carries a localized
	// user-facing message distinct from the technical detail.
	// This is typically mapped to a 502 Bad Gateway HTTP status.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInternal signifies an unexpected error on the server. This is a generic
	// error used to prevent leaking sensitive implementation details to the client.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
