package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes structured JSON lines. With an empty path it swallows
// everything, so callers never need a nil check.
type Logger struct {
	mu sync.Mutex
	w  io.WriteCloser
}

func NewLogger(path string) (*Logger, error) {
	if path == "" {
		return &Logger{w: nopCloser{Writer: io.Discard}}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{w: f}, nil
}

// NewWriterLogger logs to an arbitrary writer; used by tests.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{w: nopCloser{Writer: w}}
}

func (l *Logger) Info(event string, fields map[string]any) {
	l.log("info", event, fields)
}

func (l *Logger) Warn(event string, fields map[string]any) {
	l.log("warn", event, fields)
}

func (l *Logger) Error(event string, fields map[string]any) {
	l.log("error", event, fields)
}

func (l *Logger) log(level, event string, fields map[string]any) {
	if l == nil || l.w == nil {
		return
	}
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"event": event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, _ := json.Marshal(entry)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b, '\n'))
}

func (l *Logger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
