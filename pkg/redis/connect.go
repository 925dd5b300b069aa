package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// Connect establishes a connection to a Redis server using the provided configuration.
// It attempts to connect up to RetryAttempts times, waiting RetryInterval
// between attempts, all within ConnectTimeout.
//
// Returns:
//   - *redis.Client: A connected Redis client if successful
//   - error: ErrEmptyConnectionURL or ErrFailedToParseRedisConnString if the
//     connection URL is invalid, ErrRedisNotReady if all connection attempts fail
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	redisConnOpt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	var client *redis.Client
	err = retry.Do(ctx, backoff(cfg), func(ctx context.Context) error {
		c := redis.NewClient(redisConnOpt)
		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			return retry.RetryableError(err)
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrRedisNotReady, err)
	}

	return client, nil
}

func backoff(cfg Config) retry.Backoff {
	attempts := max(cfg.RetryAttempts, 1)
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = DefaultConfig().RetryInterval
	}
	return retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(interval))
}
