package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies workflow failures for transport mapping and logging.
type ErrorKind string

const (
	ErrKindValidation      ErrorKind = "validation"
	ErrKindNotFound        ErrorKind = "not_found"
	ErrKindConfiguration   ErrorKind = "configuration"
	ErrKindExternalService ErrorKind = "external_service"
	ErrKindPersistence     ErrorKind = "persistence"
)

// Error is the typed workflow error. Message is safe to return to clients;
// Err carries the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ValidationError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ConfigurationError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindConfiguration, Message: fmt.Sprintf(format, args...)}
}

func ExternalServiceError(message string, err error) *Error {
	return &Error{Kind: ErrKindExternalService, Message: message, Err: err}
}

func PersistenceError(message string, err error) *Error {
	return &Error{Kind: ErrKindPersistence, Message: message, Err: err}
}

// KindOf extracts the error kind, defaulting to persistence for untyped
// errors so unexpected failures never leak internals to clients.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ErrKindPersistence
}

// MessageOf returns the client-safe message for an error.
func MessageOf(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return "internal error"
}
