package result

import "errors"

var (
	// ErrFailed is recorded when a Result is failed without a specific cause.
	ErrFailed = errors.New("operation failed")

	// ErrPanic wraps a panic recovered while running a function passed to Go.
	ErrPanic = errors.New("operation panicked")
)
