package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zapcore"
)

// bufferSyncer captures entries and counts Sync calls.
type bufferSyncer struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	syncs   int
	syncErr error
}

func (b *bufferSyncer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *bufferSyncer) Sync() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.syncs++
	return b.syncErr
}

func (b *bufferSyncer) entries(t *testing.T) []map[string]interface{} {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]interface{}
	for _, line := range bytes.Split(bytes.TrimSpace(b.buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(line, &entry))
		out = append(out, entry)
	}
	return out
}

func TestLoggerClient_WritesToEveryHandler(t *testing.T) {
	t.Parallel()
	a, b := &bufferSyncer{}, &bufferSyncer{}
	log := NewLoggerClientWithHandlers(Config{Level: Info, ServiceName: "trek-test"}, a, b)

	log.Info("span exported", nil, map[string]interface{}{"span": "fetch"})

	for _, h := range []*bufferSyncer{a, b} {
		entries := h.entries(t)
		require.Len(t, entries, 1)
		assert.Equal(t, "span exported", entries[0]["msg"])
		assert.Equal(t, "INFO", entries[0]["level"])
		assert.Equal(t, "fetch", entries[0]["span"])
		assert.Equal(t, "trek-test", entries[0]["service"])
	}
}

func TestLoggerClient_LevelFiltering(t *testing.T) {
	t.Parallel()
	h := &bufferSyncer{}
	log := NewLoggerClientWithHandlers(Config{Level: Warning}, h)

	log.Debug("hidden", nil)
	log.Info("hidden", nil)
	log.Warn("shown", errors.New("boom"))

	entries := h.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "boom", entries[0]["error"])
}

func TestLoggerClient_SyncAggregatesHandlerErrors(t *testing.T) {
	t.Parallel()
	first := &bufferSyncer{syncErr: errors.New("disk full")}
	second := &bufferSyncer{}
	log := NewLoggerClientWithHandlers(Config{}, first, second)

	err := log.Sync()

	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, first.syncs)
	assert.Equal(t, 1, second.syncs, "later handlers are still synced")
}

func TestLoggerClient_HandlersIsACopy(t *testing.T) {
	t.Parallel()
	h := &bufferSyncer{}
	log := NewLoggerClientWithHandlers(Config{}, h)

	handlers := log.Handlers()
	handlers[0] = nil

	assert.Equal(t, []zapcore.WriteSyncer{h}, log.Handlers())
}

func TestNewLoggerClient_FileOutput(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "trek.log")
	log := NewLoggerClient(Config{OutputPaths: []string{path}})

	log.Info("to file", nil)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
	assert.Len(t, log.Handlers(), 1)
}

func TestFXModule_ProvidesSinkAndLogger(t *testing.T) {
	t.Parallel()
	var (
		sink Sink
		log  Logger
	)

	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() Config {
			return Config{Level: Info, OutputPaths: []string{filepath.Join(t.TempDir(), "fx.log")}}
		}),
		fx.Populate(&sink, &log),
	)

	app.RequireStart()
	defer app.RequireStop()

	assert.NotNil(t, sink)
	assert.NotNil(t, log)
	assert.Len(t, sink.Handlers(), 1)
}
