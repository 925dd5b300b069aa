package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"BROWNIEGATE_REDIS_URL" envDefault:"redis://localhost:6379/0" yaml:"url"`      // ConnectionURL is the URL of the database. It should be in the format "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"BROWNIEGATE_REDIS_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`       // RetryAttempts is the number of attempts to connect to the database.
	RetryInterval  time.Duration `env:"BROWNIEGATE_REDIS_RETRY_INTERVAL" envDefault:"5s" yaml:"retry_interval"`      // RetryInterval is the interval between retry attempts, e.g. "5s".
	ConnectTimeout time.Duration `env:"BROWNIEGATE_REDIS_CONNECT_TIMEOUT" envDefault:"30s" yaml:"connect_timeout"`   // ConnectTimeout bounds the whole connection procedure including retries.
	KeyPrefix      string        `env:"BROWNIEGATE_REDIS_KEY_PREFIX" envDefault:"browniegate:revoked" yaml:"prefix"` // KeyPrefix namespaces denylist keys.
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ConnectionURL:  "redis://localhost:6379/0",
		RetryAttempts:  3,
		RetryInterval:  5 * time.Second,
		ConnectTimeout: 30 * time.Second,
		KeyPrefix:      "browniegate:revoked",
	}
}
