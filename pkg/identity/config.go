package identity

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config holds the identity API connection settings.
type Config struct {
	BaseURL       string        `env:"BROWNIEGATE_API_URL" yaml:"url"`
	APIKey        string        `env:"BROWNIEGATE_API_KEY" yaml:"api_key"`
	ProjectUUID   string        `env:"BROWNIEGATE_PROJECT_UUID" yaml:"project_uuid"`
	Timeout       time.Duration `env:"BROWNIEGATE_API_TIMEOUT" envDefault:"10s" yaml:"timeout"`
	RetryAttempts int           `env:"BROWNIEGATE_API_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`
	RetryInterval time.Duration `env:"BROWNIEGATE_API_RETRY_INTERVAL" envDefault:"200ms" yaml:"retry_interval"`
	UserAgent     string        `env:"BROWNIEGATE_API_USER_AGENT" envDefault:"browniegate-go" yaml:"user_agent"`
}

// DefaultConfig returns the defaults for everything but the credentials.
func DefaultConfig() Config {
	return Config{
		Timeout:       10 * time.Second,
		RetryAttempts: 3,
		RetryInterval: 200 * time.Millisecond,
		UserAgent:     "browniegate-go",
	}
}

// Validate checks that the credentials and base URL are usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if _, err := uuid.Parse(c.ProjectUUID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProjectUUID, err)
	}
	return nil
}
