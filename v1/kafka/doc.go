// Package kafka provides a span exporter that produces finished spans to an
// Apache Kafka topic.
//
// Every span becomes one message. The key is the hex trace id, so all spans of
// a trace are hashed to the same partition; the value is the span encoded with
// the configured spanrecord.Encoding; headers carry the content type, span id
// and span name.
//
// Core Features:
//   - Async kafka-go writer: Export returns as soon as messages are queued
//   - Per-span export results completed from the writer's completion callback
//   - TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512)
//   - gzip, snappy, lz4 or zstd compression
//   - Optional observer notified for every delivery
//
// Basic Usage:
//
//	exp, err := kafka.NewExporter(kafka.Config{
//		Brokers:  []string{"localhost:9092"},
//		Topic:    "spans",
//		Encoding: spanrecord.EncodingProtobuf,
//	})
//	if err != nil {
//		return err
//	}
//	proc, err := processor.NewProcessor(processor.Config{}, exp, log)
//
// Shutdown closes the writer, which delivers buffered messages before it
// returns. Spans exported after Shutdown fail with ErrClosed.
//
// Configuration can be provided via environment variables:
//
//	KAFKA_BROKERS=localhost:9092
//	KAFKA_TOPIC=spans
//	KAFKA_ENCODING=protobuf
//	KAFKA_COMPRESSION_CODEC=zstd
package kafka
