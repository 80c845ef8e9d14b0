package log

import (
	"os"
	"sync"
)

// FileLogger appends events to a capture file, one CBOR item per event.
// Each event is written with a single write call so concurrent captures
// appending to the same file do not interleave. Events that fail to encode
// are counted and skipped; capture never disrupts scanning.
type FileLogger struct {
	mu      sync.Mutex
	file    *os.File
	written int
	dropped int
	closed  bool
}

// NewFileLogger opens path for appending, creating it if needed. Captures
// hold peer payloads, so new files are readable by the owner only.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &FileLogger{file: f}, nil
}

// Log appends the event. It is a no-op after Close.
func (l *FileLogger) Log(event Event) {
	data, err := EncodeEvent(event)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err != nil {
		l.dropped++
		return
	}
	if _, err := l.file.Write(data); err != nil {
		l.dropped++
		return
	}
	l.written++
}

// Stats returns how many events were written and how many were dropped.
func (l *FileLogger) Stats() (written, dropped int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written, l.dropped
}

// Close syncs and closes the file. Closing twice is a no-op.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	syncErr := l.file.Sync()
	if err := l.file.Close(); err != nil {
		return err
	}
	return syncErr
}

var _ CloseLogger = (*FileLogger)(nil)
