package kipris

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/krtools/kipris-mcp/internal/config"
)

// Config carries everything the client needs to talk to KIPRIS.
type Config struct {
	APIKey  string        `validate:"required"`
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

// LoadConfig builds a client Config from the process configuration.
func LoadConfig() (Config, error) {
	timeout, err := parseDuration(config.HTTPTimeout(), 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", config.KeyHTTPTimeout, err)
	}

	cfg := Config{
		APIKey:  strings.TrimSpace(config.KiprisAPIKey()),
		BaseURL: strings.TrimRight(config.KiprisBaseURL(), "/"),
		Timeout: timeout,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config without echoing the key into error text.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return newError(KindAuth, "config", "KIPRIS_API_KEY is not set", nil)
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid kipris config: %w", err)
	}
	return nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, err
	}
	return d, nil
}
