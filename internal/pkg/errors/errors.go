// Package errors provides error handling utilities for the scenecast
// pipeline: error codes, wrapping with operation context, and HTTP mapping.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code categorizes an error for boundary handling.
type Code string

const (
	CodeInternal        Code = "INTERNAL_ERROR"
	CodeValidation      Code = "VALIDATION_ERROR"
	CodeConfiguration   Code = "CONFIG_ERROR"
	CodeUpstream        Code = "UPSTREAM_ERROR"
	CodeArtifactMissing Code = "ARTIFACT_MISSING"
	CodeNotFound        Code = "NOT_FOUND"
)

// Error carries a code, a human-readable message, the operation that failed
// and the underlying cause.
type Error struct {
	Code    Code
	Message string
	// Op is the operation that failed (e.g. "render.submit").
	Op     string
	Err    error
	Fields map[string]any
}

func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on code so sentinel comparisons like
// errors.Is(err, &Error{Code: CodeValidation}) work across wrapping.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithField attaches a context field to the error.
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// HTTPStatus maps the error code to an HTTP response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return 400
	case CodeNotFound, CodeArtifactMissing:
		return 404
	case CodeUpstream:
		return 502
	case CodeConfiguration:
		return 500
	default:
		return 500
	}
}

// New creates a new error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with operation context, preserving the code
// when the cause is already an *Error.
func Wrap(err error, op string, message string) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return &Error{Code: e.Code, Message: message, Op: op, Err: err, Fields: e.Fields}
	}
	return &Error{Code: CodeInternal, Message: message, Op: op, Err: err}
}

// WrapWithCode wraps an error under a specific code.
func WrapWithCode(err error, code Code, op string, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Op: op, Err: err}
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// ValidationField creates a validation error for a specific field.
func ValidationField(field string, message string) *Error {
	return New(CodeValidation, message).WithField("field", field)
}

// Configuration creates a configuration error.
func Configuration(message string) *Error {
	return New(CodeConfiguration, message)
}

// Upstream creates an upstream error for a named external service.
func Upstream(service string, message string) *Error {
	return New(CodeUpstream, message).WithField("service", service)
}

// ArtifactMissing signals that a referenced storage object cannot be
// retrieved or has no content.
func ArtifactMissing(fileKey string) *Error {
	return Newf(CodeArtifactMissing, "artifact not found: %s", fileKey).
		WithField("file_key", fileKey)
}

// NotFound creates a not found error.
func NotFound(resource string, id string) *Error {
	return Newf(CodeNotFound, "%s not found: %s", resource, id).
		WithField("resource", resource).
		WithField("id", id)
}

// GetCode extracts the error code, defaulting to CodeInternal.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetHTTPStatus extracts the HTTP status for an error.
func GetHTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return 500
}

// GetFields extracts attached context fields, or nil.
func GetFields(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) && e.Fields != nil {
		return e.Fields
	}
	return nil
}

// IsCode checks whether err carries the given code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// IsValidation checks whether err is a validation error.
func IsValidation(err error) bool {
	return IsCode(err, CodeValidation)
}

// IsArtifactMissing checks whether err is an artifact-missing error.
func IsArtifactMissing(err error) bool {
	return IsCode(err, CodeArtifactMissing)
}

// As is a convenience wrapper for errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is a convenience wrapper for errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
