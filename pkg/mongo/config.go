package mongo

import "time"

// Config represents the configuration for the database.
type Config struct {
	ConnectionURL   string        `env:"BROWNIEGATE_MONGODB_URL" yaml:"url"`                                                      // ConnectionURL is the URL of the database.
	Database        string        `env:"BROWNIEGATE_MONGODB_DATABASE" envDefault:"browniegate" yaml:"database"`                   // Database holds the denylist collection.
	Collection      string        `env:"BROWNIEGATE_MONGODB_DENYLIST_COLLECTION" envDefault:"revoked_sessions" yaml:"collection"` // Collection is the denylist collection name.
	ConnectTimeout  time.Duration `env:"BROWNIEGATE_MONGODB_CONNECT_TIMEOUT" envDefault:"10s" yaml:"connect_timeout"`             // ConnectTimeout bounds connecting and server selection.
	MaxPoolSize     uint64        `env:"BROWNIEGATE_MONGODB_MAX_POOL_SIZE" envDefault:"100" yaml:"max_pool_size"`                 // MaxPoolSize is the maximum number of connections in the connection pool.
	MinPoolSize     uint64        `env:"BROWNIEGATE_MONGODB_MIN_POOL_SIZE" envDefault:"1" yaml:"min_pool_size"`                   // MinPoolSize is the minimum number of connections in the connection pool.
	MaxConnIdleTime time.Duration `env:"BROWNIEGATE_MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s" yaml:"max_conn_idle_time"`      // MaxConnIdleTime is the maximum time that a connection can remain idle in the connection pool.
	RetryWrites     bool          `env:"BROWNIEGATE_MONGODB_RETRY_WRITES" envDefault:"true" yaml:"retry_writes"`                  // RetryWrites specifies whether to retry write operations.
	RetryReads      bool          `env:"BROWNIEGATE_MONGODB_RETRY_READS" envDefault:"true" yaml:"retry_reads"`                    // RetryReads specifies whether to retry read operations.
	RetryAttempts   int           `env:"BROWNIEGATE_MONGODB_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`                 // RetryAttempts is the number of attempts to connect to the database.
	RetryInterval   time.Duration `env:"BROWNIEGATE_MONGODB_RETRY_INTERVAL" envDefault:"5s" yaml:"retry_interval"`                // RetryInterval is the interval between retry attempts.
}

// DefaultConfig returns the default configuration without a connection URL.
func DefaultConfig() Config {
	return Config{
		Database:        "browniegate",
		Collection:      "revoked_sessions",
		ConnectTimeout:  10 * time.Second,
		MaxPoolSize:     100,
		MinPoolSize:     1,
		MaxConnIdleTime: 300 * time.Second,
		RetryWrites:     true,
		RetryReads:      true,
		RetryAttempts:   3,
		RetryInterval:   5 * time.Second,
	}
}
