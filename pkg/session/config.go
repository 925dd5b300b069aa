package session

import (
	"time"

	"github.com/dmitrymomot/browniegate/pkg/envelope"
)

// Config holds session configuration
type Config struct {
	// TTL is the lifetime of tokens issued by Login (default: 1h)
	TTL time.Duration `env:"BROWNIEGATE_SESSION_TTL" envDefault:"1h" yaml:"ttl"`

	// MaxTokenAge caps the age of the envelope regardless of the payload
	// expiry. Zero disables the check.
	MaxTokenAge time.Duration `env:"BROWNIEGATE_SESSION_MAX_TOKEN_AGE" envDefault:"0" yaml:"max_token_age"`

	// ClockSkew is how far in the future a token may claim to have been
	// sealed or issued before it is rejected.
	ClockSkew time.Duration `env:"BROWNIEGATE_SESSION_CLOCK_SKEW" envDefault:"1m" yaml:"clock_skew"`

	// CookieName is the name of the session cookie (default: "bg_session")
	CookieName string `env:"BROWNIEGATE_SESSION_COOKIE_NAME" envDefault:"bg_session" yaml:"cookie_name"`

	// SecureCookies enables the Secure flag on session cookies (recommended for production)
	SecureCookies bool `env:"BROWNIEGATE_SESSION_SECURE_COOKIES" envDefault:"false" yaml:"secure_cookies"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		TTL:        time.Hour,
		ClockSkew:  time.Minute,
		CookieName: "bg_session",
	}
}

// NewFromConfig creates a new Client from the provided Config.
// Options passed after cfg take precedence over it.
func NewFromConfig(cfg Config, cipher envelope.Cipher, opts ...Option) (*Client, error) {
	configOpts := []Option{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return New(cipher, configOpts...)
}
