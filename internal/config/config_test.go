package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable the loader reads so the host environment
// does not leak into a test. t.Setenv restores the original values.
func clearEnv(t *testing.T) {
	t.Helper()
	names := []string{"BOT_POLLER_RETRY_PERIOD", "BOT_LOGGER_LEVEL", "BOT_LOGGER_JSON"}
	for _, bound := range envBindings {
		names = append(names, bound...)
	}
	for _, name := range names {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Practicum.Endpoint != "https://practicum.yandex.ru/api/user_api/homework_statuses/" {
		t.Errorf("Endpoint = %q", cfg.Practicum.Endpoint)
	}
	if cfg.Poller.RetryPeriod != 10*time.Minute {
		t.Errorf("RetryPeriod = %v, want 10m", cfg.Poller.RetryPeriod)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want info", cfg.Logger.Level)
	}
	hb, ok := cfg.Scheduler.Tasks["heartbeat"]
	if !ok || !hb.Enabled || hb.Schedule == "" {
		t.Errorf("heartbeat task = %+v, %v", hb, ok)
	}
	if err := CheckCredentials(cfg.Credentials()); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("CheckCredentials() = %v, want ErrMissingCredentials", err)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfgPath := writeFile(t, dir, "config.yaml", `
practicum:
  token: file-token
  timeout: 5s
telegram:
  chat_id: "100"
poller:
  retry_period: 2m
logger:
  level: debug
  json: true
scheduler:
  tasks:
    heartbeat:
      enabled: false
`)
	envPath := writeFile(t, dir, ".env", "TELEGRAM_TOKEN=dotenv-bot\nTELEGRAM_CHAT_ID=200\n")
	t.Setenv("PRACTICUM_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "300")

	cfg, err := load(cfgPath, envPath)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	want := Credentials{PracticumToken: "env-token", TelegramToken: "dotenv-bot", TelegramChatID: "300"}
	if got := cfg.Credentials(); got != want {
		t.Errorf("Credentials() = %+v, want %+v", got, want)
	}
	if cfg.Practicum.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Practicum.Timeout)
	}
	if cfg.Poller.RetryPeriod != 2*time.Minute {
		t.Errorf("RetryPeriod = %v, want 2m", cfg.Poller.RetryPeriod)
	}
	if cfg.Logger.Level != "debug" || !cfg.Logger.JSON {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
	if cfg.Scheduler.Tasks["heartbeat"].Enabled {
		t.Error("heartbeat should be disabled by the file")
	}
	if err := CheckCredentials(cfg.Credentials()); err != nil {
		t.Errorf("CheckCredentials() = %v", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown log level", yaml: "logger:\n  level: verbose\n"},
		{name: "retry period too short", yaml: "poller:\n  retry_period: 10ms\n"},
		{name: "endpoint not a url", yaml: "practicum:\n  endpoint: not a url\n"},
		{name: "enabled task without schedule", yaml: "scheduler:\n  tasks:\n    report:\n      enabled: true\n"},
		{name: "broken yaml", yaml: "logger: [level\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			path := writeFile(t, dir, "config.yaml", tt.yaml)

			if _, err := load(path, ""); !errors.Is(err, ErrConfiguration) {
				t.Fatalf("load() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestCheckCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		creds       Credentials
		wantMissing []string
	}{
		{
			name:  "all present",
			creds: Credentials{PracticumToken: "a", TelegramToken: "b", TelegramChatID: "c"},
		},
		{
			name:        "all missing",
			creds:       Credentials{},
			wantMissing: []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"},
		},
		{
			name:        "chat id missing",
			creds:       Credentials{PracticumToken: "a", TelegramToken: "b"},
			wantMissing: []string{"TELEGRAM_CHAT_ID"},
		},
		{
			name:        "practicum token missing",
			creds:       Credentials{TelegramToken: "b", TelegramChatID: "c"},
			wantMissing: []string{"PRACTICUM_TOKEN"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckCredentials(tt.creds)
			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("CheckCredentials() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("CheckCredentials() = %v, want ErrMissingCredentials", err)
			}
			for _, name := range tt.wantMissing {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("error %q does not name %s", err, name)
				}
			}
		})
	}
}

func TestCredentialsTrimsWhitespace(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Practicum: PracticumConfig{Token: "  "},
		Telegram:  TelegramConfig{Token: " bot ", ChatID: "\t1\n"},
	}
	creds := cfg.Credentials()
	if creds.TelegramToken != "bot" || creds.TelegramChatID != "1" {
		t.Errorf("Credentials() = %+v", creds)
	}
	if err := CheckCredentials(creds); err == nil || !strings.Contains(err.Error(), "PRACTICUM_TOKEN") {
		t.Errorf("blank token should be reported missing, got %v", err)
	}
}
