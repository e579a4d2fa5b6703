// Package config loads the watcher configuration from defaults, an optional
// YAML file, an optional .env file and environment variables, and validates it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigPath is used when BOT_CONFIG is unset. A missing file at this
// path is not an error.
const DefaultConfigPath = "./config.yaml"

// DefaultEnvFile is loaded into the process environment before reading
// configuration. Variables already set in the environment win.
const DefaultEnvFile = ".env"

// ErrConfiguration wraps every failure to read or validate configuration.
var ErrConfiguration = errors.New("configuration error")

// Config holds all runtime settings.
type Config struct {
	Practicum PracticumConfig `mapstructure:"practicum"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Poller    PollerConfig    `mapstructure:"poller"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// PracticumConfig configures the homework status API client.
type PracticumConfig struct {
	Token    string        `mapstructure:"token"`
	Endpoint string        `mapstructure:"endpoint" validate:"required,url"`
	Timeout  time.Duration `mapstructure:"timeout"  validate:"min=1s,max=5m"`
}

// TelegramConfig configures message delivery.
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID string `mapstructure:"chat_id"`
}

// PollerConfig configures the watch loop.
type PollerConfig struct {
	RetryPeriod time.Duration `mapstructure:"retry_period" validate:"min=1s"`
}

// LoggerConfig configures log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// SchedulerConfig lists the maintenance tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task and sets its cron schedule (with seconds field).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

var defaults = map[string]any{
	"practicum.endpoint": "https://practicum.yandex.ru/api/user_api/homework_statuses/",
	"practicum.timeout":  30 * time.Second,

	"poller.retry_period": 10 * time.Minute,

	"logger.level": "info",
	"logger.json":  false,

	"scheduler.tasks.heartbeat.enabled":  true,
	"scheduler.tasks.heartbeat.schedule": "0 0 * * * *",
}

// envBindings maps config keys to the environment variables read for them,
// in priority order.
var envBindings = map[string][]string{
	"practicum.token":  {"PRACTICUM_TOKEN", "BOT_PRACTICUM_TOKEN"},
	"telegram.token":   {"TELEGRAM_TOKEN", "BOT_TELEGRAM_TOKEN"},
	"telegram.chat_id": {"TELEGRAM_CHAT_ID", "BOT_TELEGRAM_CHAT_ID"},
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig reads configuration in this order of precedence (highest first):
// environment variables, the .env file, the YAML file at path, defaults.
// Credentials are not checked here; see CheckCredentials.
func LoadConfig(path string) (*Config, error) {
	return load(path, DefaultEnvFile)
}

func load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: failed to load %s: %v", ErrConfiguration, envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: failed to read %s: %v", ErrConfiguration, path, err)
			}
			slog.Debug("Configuration file not found, using defaults and environment", "path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse configuration: %v", ErrConfiguration, err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}
