// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid configuration, periods and parameters
//   - Protocol errors (200-299): Malformed input lines, candle records and stacks
//   - Indicator errors (300-399): Technical indicator calculation errors
//   - Strategy errors (400-499): Policy lookup, configuration and decision errors
//   - Journal errors (500-599): Decision journal persistence errors
//   - Replay errors (600-699): Replay data loading and simulated fills
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeMalformedLine, "expected 3 tokens")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeUnknownCandleField, "unknown candle field %q", name)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeInvalidNumber, "failed to parse close", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeCandleFormatMissing) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsProtocolError reports whether err carries a protocol error code (200-299).
// Protocol errors invalidate a single input line, never the whole run.
func IsProtocolError(err error) bool {
	code := GetCode(err)

	return code >= 200 && code < 300
}

// InsufficientDataError represents an error when a chart does not hold enough
// candles for a calculation (e.g., an indicator requiring a minimum period).
type InsufficientDataError struct {
	Required int    // Minimum candles required
	Actual   int    // Candles available
	Pair     string // Optional: instrument pair context
	Message  string // Human-readable message
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, pair, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Pair:     pair,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return e.Message
}
