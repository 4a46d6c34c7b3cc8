package domain

import (
	"errors"
	"fmt"
)

// Common errors returned by domain operations.
var (
	// ErrInvalidRequest indicates that a run request contains invalid data.
	ErrInvalidRequest = errors.New("invalid run request")

	// ErrInvalidConfig indicates that the engine configuration is invalid.
	ErrInvalidConfig = errors.New("invalid engine configuration")

	// ErrInvalidVerdict indicates that a quality report carries an unrecognized verdict.
	ErrInvalidVerdict = errors.New("invalid verdict")

	// ErrInvalidResult indicates that a variant result violates its bundle invariants.
	ErrInvalidResult = errors.New("invalid variant result")

	// ErrPartialRevision indicates a bundle with exactly one of draft2/report2.
	// Revision is atomic: both artifacts are recorded or neither is.
	ErrPartialRevision = errors.New("revision recorded partially: draft2 and report2 must both be present or both absent")

	// ErrMissingRevisionPayload indicates a round-2 generation input without
	// instructions or the prior draft.
	ErrMissingRevisionPayload = errors.New("revision round requires instructions and the prior draft")

	// ErrUnexpectedRevisionPayload indicates a round-1 generation input carrying
	// revision data.
	ErrUnexpectedRevisionPayload = errors.New("original round must not carry revision instructions")

	// ErrRevisionBoundExceeded is the defensive guard on the single-revision
	// bound. It must never be observable in a correct orchestration; its
	// occurrence indicates a pipeline bug, not a transient fault.
	ErrRevisionBoundExceeded = errors.New("revision bound exceeded: at most one revision round per variant")
)

// UnknownStyleError indicates that a run configuration references a style
// identifier that is not registered. It fails the whole run before any
// variant pipeline starts.
type UnknownStyleError struct {
	// ID is the unresolved style identifier.
	ID string

	// Known lists the identifiers the registry does hold, for diagnostics.
	Known []string
}

// Error formats the unknown identifier together with the registered set.
func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("unknown style %q (registered: %v)", e.ID, e.Known)
}

// IsUnknownStyle reports whether err wraps an UnknownStyleError.
func IsUnknownStyle(err error) bool {
	var use *UnknownStyleError
	return errors.As(err, &use)
}
