package browniegate

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/browniegate/pkg/config"
	"github.com/dmitrymomot/browniegate/pkg/envelope"
	"github.com/dmitrymomot/browniegate/pkg/identity"
	"github.com/dmitrymomot/browniegate/pkg/session"
)

// Config is the complete client configuration.
type Config struct {
	Envelope envelope.Config `yaml:"envelope"`
	Identity identity.Config `yaml:"identity"`
	Session  session.Config  `yaml:"session"`

	// PayloadMaxSkew is how far a login payload timestamp may be from now.
	PayloadMaxSkew time.Duration `env:"BROWNIEGATE_PAYLOAD_MAX_SKEW" envDefault:"1m" yaml:"payload_max_skew"`

	// Timezone interprets login payload timestamps that carry no UTC offset.
	// Empty means the local timezone.
	Timezone string `env:"BROWNIEGATE_TIMEZONE" yaml:"timezone"`

	// FetchProfile copies the user's profile fields into the session
	// attributes on Login.
	FetchProfile bool `env:"BROWNIEGATE_FETCH_PROFILE" envDefault:"false" yaml:"fetch_profile"`

	// PropagateRevocation forwards session revocations to the identity API.
	PropagateRevocation bool `env:"BROWNIEGATE_PROPAGATE_REVOCATION" envDefault:"false" yaml:"propagate_revocation"`
}

// DefaultConfig returns defaults for everything except keys and credentials.
func DefaultConfig() Config {
	return Config{
		Envelope:       envelope.DefaultConfig(),
		Identity:       identity.DefaultConfig(),
		Session:        session.DefaultConfig(),
		PayloadMaxSkew: time.Minute,
	}
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
	}
	return loc, nil
}

// NewFromEnv creates a Client from BROWNIEGATE_* environment variables.
func NewFromEnv(opts ...Option) (*Client, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// NewFromFile creates a Client from the environment overlaid with the YAML
// file at path.
func NewFromFile(path string, opts ...Option) (*Client, error) {
	var cfg Config
	if err := config.LoadFile(path, &cfg); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}
