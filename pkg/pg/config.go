package pg

import "time"

type Config struct {
	ConnectionString  string        `env:"BROWNIEGATE_PG_URL" yaml:"url"`                                           // ConnectionString is the connection string to the database.
	MaxOpenConns      int32         `env:"BROWNIEGATE_PG_MAX_OPEN_CONNS" envDefault:"10" yaml:"max_open_conns"`     // MaxOpenConns is the maximum number of open connections to the database.
	MaxIdleConns      int32         `env:"BROWNIEGATE_PG_MAX_IDLE_CONNS" envDefault:"2" yaml:"max_idle_conns"`      // MaxIdleConns is the number of connections kept open when idle.
	HealthCheckPeriod time.Duration `env:"BROWNIEGATE_PG_HEALTHCHECK_PERIOD" envDefault:"1m" yaml:"healthcheck"`    // HealthCheckPeriod is the period between health checks.
	MaxConnIdleTime   time.Duration `env:"BROWNIEGATE_PG_MAX_CONN_IDLE_TIME" envDefault:"10m" yaml:"max_idle_time"` // MaxConnIdleTime is the maximum amount of time a connection may be idle to be reused.
	MaxConnLifetime   time.Duration `env:"BROWNIEGATE_PG_MAX_CONN_LIFETIME" envDefault:"30m" yaml:"max_lifetime"`   // MaxConnLifetime is the maximum amount of time a connection may be reused.

	RetryAttempts int           `env:"BROWNIEGATE_PG_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`  // RetryAttempts is the number of attempts to connect to the database.
	RetryInterval time.Duration `env:"BROWNIEGATE_PG_RETRY_INTERVAL" envDefault:"1s" yaml:"retry_interval"` // RetryInterval is the base delay between attempts; it doubles on every retry.

	MigrationsTable string `env:"BROWNIEGATE_PG_MIGRATIONS_TABLE" envDefault:"browniegate_migrations" yaml:"migrations_table"` // MigrationsTable is the name of the table used to store the migration version.
}

// DefaultConfig returns the default configuration without a connection string.
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:      10,
		MaxIdleConns:      2,
		HealthCheckPeriod: time.Minute,
		MaxConnIdleTime:   10 * time.Minute,
		MaxConnLifetime:   30 * time.Minute,
		RetryAttempts:     3,
		RetryInterval:     time.Second,
		MigrationsTable:   "browniegate_migrations",
	}
}
