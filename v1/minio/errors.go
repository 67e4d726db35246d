package minio

import "errors"

var (
	// ErrClosed is returned for exports after Shutdown.
	ErrClosed = errors.New("minio: exporter is shut down")

	// ErrTooManyUploads is returned when MaxConcurrentUploads uploads are in flight.
	ErrTooManyUploads = errors.New("minio: too many uploads in flight")

	// ErrConnectionFailed is returned when the server cannot be reached.
	ErrConnectionFailed = errors.New("minio: connection failed")

	// ErrBucketMissing is returned when the bucket does not exist and may not be created.
	ErrBucketMissing = errors.New("minio: bucket does not exist")
)
