package errors

import (
	"errors"

	"github.com/valyala/fasthttp"
)

// baseError carries the client-facing message and the HTTP status it maps to.
type baseError struct {
	message string
	status  int
}

func (e *baseError) Error() string {
	return e.message
}

func (e *baseError) StatusCode() int {
	return e.status
}

type typedError interface {
	error
	StatusCode() int
}

// IsTyped reports whether err wraps one of the HTTP-mapped error types of this package
func IsTyped(err error) bool {
	var t typedError
	return errors.As(err, &t)
}

// ValidationError is a malformed or incomplete request (400).
type ValidationError struct {
	baseError
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{baseError{message: message, status: fasthttp.StatusBadRequest}}
}

// UnauthorizedError is a missing credential or Telegram session (401).
type UnauthorizedError struct {
	baseError
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{baseError{message: message, status: fasthttp.StatusUnauthorized}}
}

// PermissionError is an authenticated caller acting outside its rights (403).
type PermissionError struct {
	baseError
}

func NewPermissionError(message string) *PermissionError {
	return &PermissionError{baseError{message: message, status: fasthttp.StatusForbidden}}
}

type NotFoundError struct {
	baseError
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{baseError{message: message, status: fasthttp.StatusNotFound}}
}

// UpstreamError is a failed call to Telegram (400).
// The message is returned to the client as is.
type UpstreamError struct {
	baseError
	cause error
}

func NewUpstreamError(prefix string, cause error) *UpstreamError {
	msg := prefix
	if cause != nil {
		msg = prefix + ": " + cause.Error()
	}
	return &UpstreamError{
		baseError: baseError{message: msg, status: fasthttp.StatusBadRequest},
		cause:     cause,
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.cause
}

// InternalError is a server-side failure with a message safe to expose (500).
type InternalError struct {
	baseError
}

func NewInternalError(message string) *InternalError {
	return &InternalError{baseError{message: message, status: fasthttp.StatusInternalServerError}}
}
