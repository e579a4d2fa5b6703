package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCriticalJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "error", true)
	Critical(context.Background(), log, "Missing credentials", "missing", "TELEGRAM_TOKEN")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "CRITICAL" {
		t.Errorf("level = %v, want CRITICAL", entry["level"])
	}
	if entry["missing"] != "TELEGRAM_TOKEN" {
		t.Errorf("missing = %v", entry["missing"])
	}
}

func TestTextLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "warn", false)
	log.Info("hidden")
	log.Warn("shown")
	Critical(context.Background(), log, "fatal")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "CRITICAL") {
		t.Errorf("unexpected output %q", out)
	}
}
