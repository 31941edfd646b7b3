package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain taxonomy. Services return these (possibly
// wrapped); the transport layer maps them to HTTP status codes.
var (
	// ErrUnauthenticated covers every authentication failure: missing,
	// malformed, expired or mis-signed tokens, and tokens for deleted
	// users. They deliberately collapse to one value so responses cannot
	// leak why a token was rejected.
	ErrUnauthenticated = errors.New("not authorized")

	// ErrForbidden means the caller is authenticated but lacks ownership
	// or the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a referenced entity id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation covers structurally invalid requests such as
	// self-follow.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrStoreFailure wraps persistence failures. Not retried here.
	ErrStoreFailure = errors.New("store failure")

	// ErrEmailTaken means a registration email is already in use
	// (case-insensitive).
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError reports a field constraint violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates per-field violations from one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e[0].Field, e[0].Message)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var single *ValidationError
	var multi ValidationErrors
	return errors.As(err, &single) || errors.As(err, &multi)
}

// Store wraps a persistence error as ErrStoreFailure, preserving the cause.
func Store(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreFailure, err)
}
