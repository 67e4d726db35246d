package rabbit

import "errors"

var (
	// ErrClosed is returned for exports after Shutdown.
	ErrClosed = errors.New("rabbit: exporter is shut down")

	// ErrNacked is returned when the broker negatively acknowledges a message.
	ErrNacked = errors.New("rabbit: message nacked by broker")

	// ErrConfirmTimeout is returned when the broker does not confirm a message in time.
	ErrConfirmTimeout = errors.New("rabbit: timed out waiting for confirm")

	// ErrConnectionFailed is returned when no connection to the broker could be made.
	ErrConnectionFailed = errors.New("rabbit: failed to connect")
)
