package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewLogger_SessionID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	ctx := WithSessionID(context.Background(), "sess-1")
	logger.With("tier", "Easy").ErrorContext(ctx, "boom", ErrAttr(errors.New("bad")))
	logger.DebugContext(ctx, "hidden")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected exactly one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["session_id"] != "sess-1" {
		t.Errorf("session_id = %v", rec["session_id"])
	}
	if rec["tier"] != "Easy" {
		t.Errorf("tier = %v", rec["tier"])
	}
	if rec["error"] != "bad" {
		t.Errorf("error = %v", rec["error"])
	}
}

func TestWithSessionID_Empty(t *testing.T) {
	ctx := context.Background()
	if WithSessionID(ctx, "") != ctx {
		t.Error("empty id should not wrap the context")
	}
	if SessionIDFrom(ctx) != "" {
		t.Error("expected no session id")
	}
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "nested", "mathwhiz.log")
	closer, err := Setup(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	slog.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Contains(data, []byte(`"msg":"hello"`)) {
		t.Errorf("log file missing record: %s", data)
	}

	closer, err = Setup("", slog.LevelInfo)
	if err != nil {
		t.Fatalf("setup discard: %v", err)
	}
	closer.Close()
}

func TestDefaultLogPath(t *testing.T) {
	t.Setenv("MATHWHIZ_LOG_FILE", "/tmp/custom.log")
	if got := DefaultLogPath(); got != "/tmp/custom.log" {
		t.Errorf("got %q", got)
	}

	t.Setenv("MATHWHIZ_LOG_FILE", "")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultLogPath(); got != "/state/mathwhiz/mathwhiz.log" {
		t.Errorf("got %q", got)
	}
}
