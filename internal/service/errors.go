package service

import "errors"

// Error taxonomy mapped to HTTP status codes by the handlers.
var (
	// ErrUnauthorized means the supplied credential did not match.
	ErrUnauthorized = errors.New("invalid credential")

	// ErrInvalidInput means a request field failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable wraps any store failure. A mutation that hits
	// it has not been persisted and is never broadcast.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
