package spanrecord

import "errors"

var (
	// ErrUnknownEncoding is returned for an Encoding this package cannot produce.
	ErrUnknownEncoding = errors.New("spanrecord: unknown encoding")

	// ErrEncode wraps serialization failures.
	ErrEncode = errors.New("spanrecord: encode failed")
)
