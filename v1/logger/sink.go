package logger

import (
	"errors"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// Handlers returns the destinations this logger writes to, in the order of
// Config.OutputPaths. Each can be synced independently.
func (l *LoggerClient) Handlers() []zapcore.WriteSyncer {
	out := make([]zapcore.WriteSyncer, len(l.handlers))
	copy(out, l.handlers)
	return out
}

// Sync flushes every handler and returns the combined errors.
func (l *LoggerClient) Sync() error {
	var errs error
	for _, h := range l.handlers {
		errs = multierr.Append(errs, h.Sync())
	}
	return errs
}

// Close syncs all handlers and releases the files opened for them.
func (l *LoggerClient) Close() error {
	err := l.Sync()
	for _, closeFn := range l.closers {
		closeFn()
	}
	l.closers = nil
	return err
}

// consoleSyncer ignores the errors fsync reports for terminals and pipes.
type consoleSyncer struct {
	zapcore.WriteSyncer
}

func (c consoleSyncer) Sync() error {
	err := c.WriteSyncer.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
