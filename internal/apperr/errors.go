package apperr

import (
	"errors"
	"strings"
)

// Failure kinds surfaced to API clients.
var (
	// ErrUnauthenticated is returned on sign-in for both an unknown email and a
	// wrong password - the two cases must not be distinguishable in the response.
	ErrUnauthenticated = errors.New("invalid email or password")

	// ErrUnauthorized is returned when an operation requires a session and none
	// (or an invalid one) was presented.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when a referenced entity id does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError aggregates all field messages of a rejected input into a
// single error.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func Validation(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// UploadError wraps the cause of a failed image attach. The photo row created
// before the attach is kept, so the caller sees the cause but no rollback.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "upload failed: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

func Upload(err error) *UploadError {
	return &UploadError{Err: err}
}

// Code maps an error to the machine-readable code exposed in the GraphQL
// error extensions.
func Code(err error) string {
	var validationErr *ValidationError
	var uploadErr *UploadError

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "UNAUTHENTICATED"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.As(err, &validationErr):
		return "VALIDATION_ERROR"
	case errors.As(err, &uploadErr):
		return "UPLOAD_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}
