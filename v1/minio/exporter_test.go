package minio

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/spanrecord"
)

type putCall struct {
	bucket string
	key    string
	body   []byte
	opts   minio.PutObjectOptions
}

// fakePutter records uploads. When gate is set, uploads block until it is closed.
type fakePutter struct {
	mu    sync.Mutex
	calls []putCall
	err   error
	gate  chan struct{}
}

func (f *fakePutter) PutObject(ctx context.Context, bucket, key string, r io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return minio.UploadInfo{}, ctx.Err()
		}
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, putCall{bucket: bucket, key: key, body: body, opts: opts})
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: int64(len(body))}, f.err
}

func (f *fakePutter) uploaded() []putCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]putCall{}, f.calls...)
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (o *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, ctx)
}

func testExporter(t *testing.T, client objectPutter, cfg Config) *Exporter {
	t.Helper()
	cfg.Connection.BucketName = "spans-bucket"
	cfg = cfg.withDefaults()
	enc, err := spanrecord.NewEncoder(cfg.Encoding)
	require.NoError(t, err)
	return newExporter(cfg, enc, client)
}

func testSpan(t *testing.T) sdktrace.ReadOnlySpan {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	return tracetest.SpanStub{
		Name: "fetch",
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		}),
		StartTime: time.Date(2024, 5, 17, 23, 59, 59, 0, time.UTC),
		EndTime:   time.Date(2024, 5, 18, 0, 0, 1, 0, time.UTC),
	}.Snapshot()
}

func wait(t *testing.T, r interface{ Wait(context.Context) error }) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.Wait(ctx)
}

func TestExporter_ObjectKey(t *testing.T) {
	t.Parallel()
	exp := testExporter(t, &fakePutter{}, Config{Encoding: spanrecord.EncodingProtobuf})

	key := exp.ObjectKey(testSpan(t))

	assert.Equal(t, "spans/2024/05/18/4bf92f3577b34da6a3ce929d0e0e4736/00f067aa0ba902b7.pb", key)
}

func TestExporter_ExportUploadsOneObjectPerSpan(t *testing.T) {
	t.Parallel()
	client := &fakePutter{}
	obs := &recordingObserver{}
	exp := testExporter(t, client, Config{}).WithObserver(obs)

	require.NoError(t, wait(t, exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)})))

	calls := client.uploaded()
	require.Len(t, calls, 1)
	assert.Equal(t, "spans-bucket", calls[0].bucket)
	assert.Equal(t, "spans/2024/05/18/4bf92f3577b34da6a3ce929d0e0e4736/00f067aa0ba902b7.json", calls[0].key)
	assert.Equal(t, "application/json", calls[0].opts.ContentType)
	assert.Equal(t, "fetch", calls[0].opts.UserMetadata["span-name"])
	assert.Contains(t, string(calls[0].body), `"name":"fetch"`)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.ops, 1)
	assert.Equal(t, "minio", obs.ops[0].Component)
	assert.Equal(t, "put", obs.ops[0].Operation)
	assert.Equal(t, "spans-bucket", obs.ops[0].Resource)
	assert.Equal(t, calls[0].key, obs.ops[0].SubResource)
}

func TestExporter_ExportFailsWhenUploadFails(t *testing.T) {
	t.Parallel()
	cause := errors.New("access denied")
	exp := testExporter(t, &fakePutter{err: cause}, Config{})

	err := wait(t, exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)}))

	assert.ErrorIs(t, err, cause)
}

func TestExporter_ExportDoesNotWaitForAFreeSlot(t *testing.T) {
	t.Parallel()
	client := &fakePutter{gate: make(chan struct{})}
	exp := testExporter(t, client, Config{MaxConcurrentUploads: 1})

	first := exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)})
	second := exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)})

	require.True(t, second.IsDone())
	assert.ErrorIs(t, second.Err(), ErrTooManyUploads)

	close(client.gate)
	assert.NoError(t, wait(t, first))
}

func TestExporter_FlushAndShutdown(t *testing.T) {
	t.Parallel()
	client := &fakePutter{gate: make(chan struct{})}
	exp := testExporter(t, client, Config{})

	res := exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)})
	flushed := exp.Flush()
	stopped := exp.Shutdown()
	assert.False(t, flushed.IsDone())
	assert.False(t, stopped.IsDone())

	assert.ErrorIs(t, exp.Export([]sdktrace.ReadOnlySpan{testSpan(t)}).Err(), ErrClosed)

	close(client.gate)
	require.NoError(t, wait(t, flushed))
	require.NoError(t, wait(t, stopped))
	assert.True(t, res.IsSuccess())
	assert.Same(t, stopped, exp.Shutdown())
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{}.withDefaults()

	assert.Equal(t, DefaultObjectPrefix, cfg.ObjectPrefix)
	assert.Equal(t, DefaultMaxConcurrentUploads, cfg.MaxConcurrentUploads)
	assert.Equal(t, DefaultUploadTimeout, cfg.UploadTimeout)
}

func TestNewExporter_RequiresEndpoint(t *testing.T) {
	t.Parallel()

	_, err := NewExporter(Config{})

	assert.ErrorIs(t, err, ErrConnectionFailed)
}
