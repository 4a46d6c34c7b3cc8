package generation

import (
	"errors"
	"fmt"
)

// Standard errors returned by generation activities.
var (
	// ErrEngineUnavailable indicates temporary writer engine unavailability.
	// Activities returning this error should be retried with backoff.
	ErrEngineUnavailable = errors.New("engine unavailable")
)

// ErrorType classifies errors to guide retry logic and escalation decisions.
type ErrorType string

const (
	// ErrorValidation signals malformed input that cannot be processed.
	// These errors are non-retryable and require caller correction.
	ErrorValidation ErrorType = "validation"

	// ErrorEngine indicates writer engine failures like rate limits or outages.
	// These errors are typically retryable with appropriate backoff.
	ErrorEngine ErrorType = "engine"

	// ErrorInternal represents unexpected failures in generation logic.
	ErrorInternal ErrorType = "internal"
)

// Error provides structured error information for generation failures.
// It supports error wrapping and retry classification, letting the variant
// orchestrator translate activity failures into failure markers.
type Error struct {
	// Type classifies the error for routing and retry decisions.
	Type ErrorType
	// Message provides human-readable error context.
	Message string
	// Cause wraps the underlying error for error chain traversal.
	Cause error
	// Retryable indicates whether the operation might succeed if retried.
	Retryable bool
}

// Error formats the error as "<type> error: <message> (<retry-status>)[: <cause>]".
func (e *Error) Error() string {
	retryStr := "non-retryable"
	if e.Retryable {
		retryStr = "retryable"
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s (%s): %v", e.Type, e.Message, retryStr, e.Cause)
	}
	return fmt.Sprintf("%s error: %s (%s)", e.Type, e.Message, retryStr)
}

// Unwrap supports error chain traversal with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}
