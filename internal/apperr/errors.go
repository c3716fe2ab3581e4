// Package apperr defines the error taxonomy shared by the service and API
// layers. Every failure surfaced to a client is one of these kinds; the API
// layer maps kinds to HTTP status codes.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Sentinel error kinds, matched with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrStore            = errors.New("store failure")
)

var statusCodes = map[error]int{
	ErrValidation:       http.StatusBadRequest,
	ErrNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed: http.StatusMethodNotAllowed,
	ErrStore:            http.StatusInternalServerError,
}

// Error carries a kind, a client-facing message, and an optional cause.
type Error struct {
	kind    error
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches against the error's kind as well as its cause chain.
func (e *Error) Is(target error) bool {
	if target == e.kind {
		return true
	}
	return errors.Is(e.cause, target)
}

// Validation returns a 400-class error with a client-facing message.
func Validation(message string) error {
	return &Error{kind: ErrValidation, message: message}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return &Error{kind: ErrValidation, message: fmt.Sprintf(format, args...)}
}

// NotFound returns a 404-class error with a client-facing message.
func NotFound(message string) error {
	return &Error{kind: ErrNotFound, message: message}
}

// MethodNotAllowed returns a 405-class error.
func MethodNotAllowed(message string) error {
	return &Error{kind: ErrMethodNotAllowed, message: message}
}

// Store wraps an underlying persistence failure as a 500-class error.
func Store(cause error, message string) error {
	return &Error{kind: ErrStore, message: message, cause: cause}
}

// Message returns the client-facing message for an error. Unclassified
// errors fall back to their full text, as the original handlers did.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.message
	}
	return err.Error()
}

// StatusCode returns the HTTP status for an error's kind.
// Unclassified errors are treated as internal failures.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		if code, ok := statusCodes[e.kind]; ok {
			return code
		}
	}
	return http.StatusInternalServerError
}
