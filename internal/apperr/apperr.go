// Package apperr defines the error taxonomy shared by services and
// controllers. Services wrap these sentinels with context via fmt.Errorf
// and %w; controllers map them to HTTP status codes with errors.Is.
package apperr

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound: a referenced entity does not exist. Never retried.
	ErrNotFound = errors.New("not found")

	// ErrValidation: malformed input, rejected before any persistence effect.
	ErrValidation = errors.New("validation failed")

	// ErrConflict: the request contradicts existing state; the caller must
	// change its input, not retry identically.
	ErrConflict = errors.New("conflict")

	// ErrAlreadyCompleted: starting or submitting against a completed
	// test response.
	ErrAlreadyCompleted = errors.New("test already completed")

	// ErrDuplicateApplication: the worker already applied to this process.
	ErrDuplicateApplication = errors.New("worker already applied to this process")

	// ErrTransient: storage timeout or connection loss; the whole operation
	// is safe to retry.
	ErrTransient = errors.New("transient storage failure")
)

// NotFoundf wraps ErrNotFound with an entity description.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Validationf wraps ErrValidation with a reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsRetryable reports whether err should be surfaced to the caller as a
// transient failure. Context deadline and cancellation count: persistence
// calls carry caller-supplied timeouts.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
