package postgres

import "errors"

var (
	// ErrClosed is returned for exports after Shutdown.
	ErrClosed = errors.New("postgres: exporter is shut down")

	// ErrTooManyWrites is returned when MaxConcurrentWrites inserts are in flight.
	ErrTooManyWrites = errors.New("postgres: too many writes in flight")

	// ErrNotConnected is returned when no database connection is available.
	ErrNotConnected = errors.New("postgres: not connected")
)
