package kafka

import "errors"

var (
	// ErrClosed is returned for exports after Shutdown.
	ErrClosed = errors.New("kafka: exporter is shut down")

	// ErrNoBrokers is returned when the configuration lists no brokers.
	ErrNoBrokers = errors.New("kafka: no brokers configured")

	// ErrUnsupportedMechanism is returned for an unknown SASL mechanism.
	ErrUnsupportedMechanism = errors.New("kafka: unsupported SASL mechanism")
)
