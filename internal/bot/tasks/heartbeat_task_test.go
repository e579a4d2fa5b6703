package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/edgard/homeworkbot/internal/poller"
)

type staticStats poller.Stats

func (s staticStats) Snapshot() poller.Stats { return poller.Stats(s) }

func TestHeartbeatLogsSnapshot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	stats := staticStats{
		Cycles:      4,
		Delivered:   1,
		Failures:    2,
		Cursor:      1000,
		LastOutcome: "fetch_failed",
		LastError:   "status endpoint returned HTTP 500",
		LastCycleAt: time.Now(),
	}

	tasks := RegisterAllTasks(TaskDeps{Logger: log, Stats: stats})
	task, ok := tasks["heartbeat"]
	if !ok {
		t.Fatal("heartbeat task is not registered")
	}
	buf.Reset()

	if err := task(context.Background()); err != nil {
		t.Fatalf("heartbeat() error = %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unexpected log output %q: %v", buf.String(), err)
	}
	if entry["cycles"] != float64(4) || entry["cursor"] != float64(1000) {
		t.Errorf("entry = %v", entry)
	}
	if entry["last_error"] != "status endpoint returned HTTP 500" {
		t.Errorf("last_error = %v", entry["last_error"])
	}
}

func TestHeartbeatWithoutStats(t *testing.T) {
	t.Parallel()

	task := newHeartbeatTask(TaskDeps{})
	if err := task(context.Background()); err == nil {
		t.Fatal("heartbeat() error = nil, want error")
	}
}
