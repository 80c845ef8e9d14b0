package log

import "io"

// Logger receives protocol events. Implementations must be safe for
// concurrent use and must not block the caller for long.
type Logger interface {
	Log(event Event)
}

// CloseLogger is a Logger that owns a resource.
type CloseLogger interface {
	Logger
	io.Closer
}

// NoopLogger discards all events. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// NopCloser wraps l with a Close that does nothing.
func NopCloser(l Logger) CloseLogger {
	return nopCloser{l}
}

type nopCloser struct{ Logger }

func (nopCloser) Close() error { return nil }

var _ Logger = NoopLogger{}
