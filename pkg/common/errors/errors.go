package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the fiberflow library

var (
	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCapacityExceeded indicates that a capacity limit was exceeded
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRateLimited indicates that a request was rate limited
	ErrRateLimited = errors.New("rate limited")
)

// IsRetryable returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited)
}

// IsTemporary returns true if the error indicates a temporary condition
func IsTemporary(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrCapacityExceeded)
}

// IsValidationError returns true if err is a *ValidationError, or wraps
// one (for example inside an *OperationError's Cause).
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidationError reports a rejected configuration value at construction
// time, naming the module, field, offending value, and reason, with an
// optional hint about how to fix it.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError constructs a ValidationError with no hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{Module: module, Field: field, Value: value, Reason: reason}
}

// WithHint attaches a hint and returns the same instance, for chaining at
// the construction call site.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements error.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrInvalidConfiguration) to succeed for
// any ValidationError.
func (e *ValidationError) Unwrap() error { return ErrInvalidConfiguration }

// OperationError reports a failure encountered while performing a named
// operation, wrapping the underlying cause with module/operation context.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError constructs an OperationError with no extra context.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{Module: module, Operation: operation, Cause: cause}
}

// WithContext attaches additional context and returns the same instance,
// for chaining at the call site.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

// Error implements error.
func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *OperationError) Unwrap() error { return e.Cause }
