package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)

	l.Info("app.start", map[string]any{"session": "abc", "levels": 3})
	l.Warn("answers.corrupt_record", map[string]any{"id": "l00-exam-q00"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("line count = %d", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line not JSON: %v", err)
	}
	if first["event"] != "app.start" || first["level"] != "info" || first["session"] != "abc" {
		t.Fatalf("unexpected entry %v", first)
	}
	if first["ts"] == "" {
		t.Fatalf("missing timestamp")
	}

	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("second line not JSON: %v", err)
	}
	if second["level"] != "warn" {
		t.Fatalf("unexpected level %v", second["level"])
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored", nil)
	l.Error("ignored", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("close nil logger: %v", err)
	}
}

func TestEmptyPathDiscards(t *testing.T) {
	l, err := NewLogger("")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Info("dropped", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
