package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingCredentials is returned by CheckCredentials.
var ErrMissingCredentials = errors.New("required credentials are missing")

// Credentials are the three secrets the watcher cannot run without.
type Credentials struct {
	PracticumToken string `validate:"required"`
	TelegramToken  string `validate:"required"`
	TelegramChatID string `validate:"required"`
}

// Credentials extracts the secrets from the configuration, trimming
// surrounding whitespace.
func (c *Config) Credentials() Credentials {
	return Credentials{
		PracticumToken: strings.TrimSpace(c.Practicum.Token),
		TelegramToken:  strings.TrimSpace(c.Telegram.Token),
		TelegramChatID: strings.TrimSpace(c.Telegram.ChatID),
	}
}

var credentialEnv = map[string]string{
	"PracticumToken": "PRACTICUM_TOKEN",
	"TelegramToken":  "TELEGRAM_TOKEN",
	"TelegramChatID": "TELEGRAM_CHAT_ID",
}

// CheckCredentials returns nil only when all three credentials are set.
// Otherwise the error wraps ErrMissingCredentials and names every missing
// environment variable.
func CheckCredentials(creds Credentials) error {
	err := validate.Struct(creds)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name, ok := credentialEnv[fe.StructField()]
		if !ok {
			name = fe.StructField()
		}
		missing = append(missing, name)
	}
	return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
}
