package vite

import (
	"sync"

	"github.com/nilotpaul/spaboot/util"
)

const logSource = "vite"

// Logger receives the build tool's output.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

type consoleLogger struct {
	source string
}

// NewConsoleLogger writes every line through util.Log.
func NewConsoleLogger() Logger {
	return &consoleLogger{source: logSource}
}

func (l *consoleLogger) Info(msg string)  { util.Log(msg, l.source) }
func (l *consoleLogger) Warn(msg string)  { util.Log("warning: "+msg, l.source) }
func (l *consoleLogger) Error(msg string) { util.Log("error: "+msg, l.source) }

type fatalLogger struct {
	Logger
	once    sync.Once
	onError func(msg string)
}

// NewFatalLogger wraps base and hands the first reported error to onError.
// A broken dev build can't be served, so callers are expected to terminate.
func NewFatalLogger(base Logger, onError func(msg string)) Logger {
	return &fatalLogger{Logger: base, onError: onError}
}

func (l *fatalLogger) Error(msg string) {
	l.Logger.Error(msg)
	l.once.Do(func() {
		l.onError(msg)
	})
}
