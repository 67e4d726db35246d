package logexporter

import "errors"

// ErrHandlerPanic wraps a panic raised while syncing a sink handler.
var ErrHandlerPanic = errors.New("logexporter: handler sync panicked")
