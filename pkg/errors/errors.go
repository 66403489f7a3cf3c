// Package errors provides structured error types for primgeom.
//
// This package defines error codes and types that enable:
//   - A single taxonomy for template, instance and geometry failures
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages in the CLI
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration or input validation failures
//   - NOT_FOUND*: Unknown technology, primitive, arc or port
//   - GEOMETRY_*: Geometric anomalies (only surfaced in strict mode)
//   - INTERNAL_*: Unexpected internal errors
//
// Engine invariant violations (a multi-cut layout with zero cuts, a
// serpentine layer mismatch) are not errors: they panic.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidTemplate, "node %q: box layer needs 2 points", name)
//	if errors.Is(err, errors.ErrCodeInvalidTemplate) {
//	    // Fix the technology description
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidTemplate   Code = "INVALID_TEMPLATE"
	ErrCodeInvalidInstance   Code = "INVALID_INSTANCE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeDegenerateTrace   Code = "DEGENERATE_TRACE"
	ErrCodeDuplicateName     Code = "DUPLICATE_NAME"
	ErrCodeInvalidTechnology Code = "INVALID_TECHNOLOGY"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Geometry errors
	ErrCodeGeometryAnomaly Code = "GEOMETRY_ANOMALY"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsConfiguration reports whether err is a configuration error: a defect in
// a technology description rather than in a particular request.
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidTemplate, ErrCodeInvalidTechnology, ErrCodeDuplicateName, ErrCodeDegenerateTrace:
		return true
	}
	return false
}

// AnomalyError describes a resolved rectangle whose low edge exceeds its
// high edge. It is only returned by strict builders; permissive builders log
// the same information and keep going.
type AnomalyError struct {
	Primitive string // Primitive name
	Layer     string // Layer name
	LX, LY    int64  // Resolved low corner
	HX, HY    int64  // Resolved high corner
}

// Error implements the error interface.
func (e *AnomalyError) Error() string {
	return fmt.Sprintf("malformed polygon on %s/%s: low (%d,%d) exceeds high (%d,%d)",
		e.Primitive, e.Layer, e.LX, e.LY, e.HX, e.HY)
}

// Code returns the error code for this error type.
func (e *AnomalyError) Code() Code {
	return ErrCodeGeometryAnomaly
}
