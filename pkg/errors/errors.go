// Package errors provides structured error types for leftysay.
//
// Errors carry a machine-readable [Code] so callers can tell recoverable
// conditions (the image could not be rendered) from terminal ones (there is
// nothing to show) without matching on message text.
//
// # Error Codes
//
//   - RENDER_*: the external image renderer is missing or failed
//   - CACHE_UNAVAILABLE: render cache storage could not be used (never fatal)
//   - NO_CONTENT: neither bubble nor image produced output
//   - LAYOUT_OVERFLOW: the bubble width budget was too small and was clamped
//   - INVALID_*: input or configuration validation failures
//   - *_NOT_FOUND: missing packs or files
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoContent, "nothing to display")
//	if errors.Is(err, errors.ErrCodeNoContent) {
//	    // Handle terminal condition
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "chafa exited with status %d", code)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rendering errors
	ErrCodeRenderUnavailable Code = "RENDER_UNAVAILABLE"
	ErrCodeRenderFailed      Code = "RENDER_FAILED"
	ErrCodeCacheUnavailable  Code = "CACHE_UNAVAILABLE"
	ErrCodeNoContent         Code = "NO_CONTENT"
	ErrCodeLayoutOverflow    Code = "LAYOUT_OVERFLOW"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidColors Code = "INVALID_COLORS"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodePackNotFound Code = "PACK_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeNoImages     Code = "NO_IMAGES"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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
// Only the outermost *Error in the chain is consulted, so a NO_CONTENT error
// wrapping a RENDER_FAILED cause reports NO_CONTENT.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Has reports whether any *Error in err's chain carries code.
func Has(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}

// Recoverable reports whether err describes an image rendering problem the
// caller can survive by showing the bubble alone.
func Recoverable(err error) bool {
	return Is(err, ErrCodeRenderUnavailable) || Is(err, ErrCodeRenderFailed)
}
