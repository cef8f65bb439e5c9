package apperrors

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind is the stable machine-readable error class surfaced to callers.
type Kind string

const (
	Unauthenticated    Kind = "unauthenticated"
	AccessDenied       Kind = "access_denied"
	NotFound           Kind = "not_found"
	Validation         Kind = "validation_error"
	Conflict           Kind = "conflict"
	StorageUnavailable Kind = "storage_unavailable"
)

// Error pairs a kind with a human-readable message. The underlying cause is
// carried for logs but never rendered to clients.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to an error of the given kind.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: err}
}

// Storage wraps a transient storage failure so callers can tell "try again"
// apart from "your request was invalid".
func Storage(err error, message string) *Error {
	return &Error{Kind: StorageUnavailable, Message: message, cause: errors.WithStack(err)}
}

// KindOf extracts the kind from an error chain, defaulting to
// StorageUnavailable for untyped failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return StorageUnavailable
}

// Is reports whether the error chain carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// HTTPStatus maps an error kind to the wire status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Unauthenticated:
		return http.StatusUnauthorized
	case AccessDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Validation, Conflict:
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}
