// Package minio provides a span exporter that stores finished spans as
// objects in a MinIO or other S3-compatible bucket.
//
// Each span is written to its own object, keyed by date, trace id and span id:
//
//	spans/2024/05/17/4bf92f3577b34da6a3ce929d0e0e4736/00f067aa0ba902b7.json
//
// so that listing a trace is a prefix query. The object body is the span in the
// configured spanrecord.Encoding; trace id, span id and span name are stored
// as user metadata.
//
// Uploads run on an errgroup limited to MaxConcurrentUploads. Export never
// waits for a free slot: when the limit is reached the span fails with
// ErrTooManyUploads and is dropped, the same way the processor drops any
// span whose export fails.
//
// Basic usage:
//
//	exp, err := minio.NewExporter(minio.Config{
//		Connection: minio.ConnectionConfig{
//			Endpoint:             "localhost:9000",
//			AccessKeyID:          "minioadmin",
//			SecretAccessKey:      "minioadmin",
//			BucketName:           "spans",
//			AccessBucketCreation: true,
//		},
//	})
//	if err != nil {
//		return err
//	}
//	proc, err := processor.NewProcessor(processor.Config{}, exp, log)
package minio
