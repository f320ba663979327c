// Package errors provides a structured error type hierarchy for promptctl.
//
// This package defines base error types for common error conditions, wrapped
// error types that add contextual information, and helper functions for error
// wrapping and type checking.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrNotFound - resource not found
//   - ErrAlreadyExists - duplicate resource
//   - ErrInvalid - validation failed
//   - ErrUnauthorized - session missing or rejected
//   - ErrConflict - server rejected a conflicting mutation
//   - ErrUnreachable - backend could not be reached
//   - ErrCanceled - user canceled operation
//
// Wrapped error types (add context):
//   - APIError{Method, Path, Status, Detail, Fields} - non-2xx API responses
//   - ValidationError{Field, Err} - local form validation failures
//   - ConfigError{Path, Err} - configuration errors
//
// # Usage
//
//	// Use sentinel errors directly
//	return errors.ErrNotFound
//
//	// Wrap with context using Wrap
//	return errors.Wrap(err, "listPrompts")
//
//	// Check error types
//	if errors.IsUnauthorized(err) {
//	    // ask the operator to log in again
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Base error types (sentinel errors).
var (
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = baseError("not found")

	// ErrAlreadyExists indicates a duplicate resource.
	ErrAlreadyExists = baseError("already exists")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrUnauthorized indicates the session is missing, expired, or rejected.
	ErrUnauthorized = baseError("unauthorized")

	// ErrConflict indicates the server rejected a conflicting mutation.
	ErrConflict = baseError("conflict")

	// ErrUnreachable indicates the backend could not be reached.
	ErrUnreachable = baseError("backend unreachable")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// APIError represents a non-2xx response from the backend.
type APIError struct {
	// Method is the HTTP method of the failed request.
	Method string
	// Path is the request path (no host, no query).
	Path string
	// Status is the HTTP status code.
	Status int
	// Detail is the human-readable message from the response body
	// ("detail" or "error" key), if any.
	Detail string
	// Fields holds per-field error messages when the backend returned a
	// field-error object.
	Fields map[string][]string
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" && len(e.Fields) > 0 {
		var parts []string
		for field, errs := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(errs, "; ")))
		}
		msg = strings.Join(parts, ", ")
	}
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("%s %s: %s (status %d)", e.Method, e.Path, msg, e.Status)
}

// Unwrap maps the status code onto the sentinel hierarchy so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case 401, 403:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	case 400:
		return ErrInvalid
	}
	return nil
}

// ValidationError represents a client-side form validation failure. It is
// raised before any request is sent.
type ValidationError struct {
	// Field is the form field that failed validation.
	Field string
	// Err is the underlying error.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error.
func Wrap(err error, op string) error {
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// Invalid builds a ValidationError wrapping ErrInvalid with a message.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Err: fmt.Errorf("%s: %w", msg, ErrInvalid)}
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err is or wraps ErrAlreadyExists.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsUnauthorized reports whether err is or wraps ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsConflict reports whether err is or wraps ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnreachable reports whether err is or wraps ErrUnreachable.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// AsAPIError reports whether err can be typed as an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// AsValidationError reports whether err can be typed as a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
