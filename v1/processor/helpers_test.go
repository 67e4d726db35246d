package processor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type logEntry struct {
	level  string
	msg    string
	err    error
	fields map[string]interface{}
}

// captureLogger records every entry it receives.
type captureLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (c *captureLogger) record(level, msg string, err error, fields []map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	merged := map[string]interface{}{}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	c.entries = append(c.entries, logEntry{level: level, msg: msg, err: err, fields: merged})
}

func (c *captureLogger) Info(msg string, err error, fields ...map[string]interface{}) {
	c.record("info", msg, err, fields)
}

func (c *captureLogger) Debug(msg string, err error, fields ...map[string]interface{}) {
	c.record("debug", msg, err, fields)
}

func (c *captureLogger) Warn(msg string, err error, fields ...map[string]interface{}) {
	c.record("warn", msg, err, fields)
}

func (c *captureLogger) byLevel(level string) []logEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []logEntry
	for _, e := range c.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

// panickingLogger panics on every call.
type panickingLogger struct{}

func (panickingLogger) Info(string, error, ...map[string]interface{})  { panic("sink broken") }
func (panickingLogger) Debug(string, error, ...map[string]interface{}) { panic("sink broken") }
func (panickingLogger) Warn(string, error, ...map[string]interface{})  { panic("sink broken") }

func testSpan(t *testing.T, name string, sampled bool) sdktrace.ReadOnlySpan {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	var flags trace.TraceFlags
	if sampled {
		flags = trace.FlagsSampled
	}

	return tracetest.SpanStub{
		Name: name,
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: flags,
		}),
		StartTime: time.Unix(0, 1000),
		EndTime:   time.Unix(0, 1500),
	}.Snapshot()
}
