// Package redis connects to Redis and provides a Redis-backed revocation
// denylist for session tokens.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration.
//   - Denylist, a denylist.Store keeping one key per revoked token that
//     expires together with the token.
//   - Denylist.Healthcheck for readiness probes.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
//
//	sessions, err := session.New(cipher,
//	    session.WithDenylist(redis.NewDenylist(client, cfg.KeyPrefix)),
//	)
//
// # Errors
//
// Connection problems are reported with sentinel errors (e.g. ErrRedisNotReady)
// joined with the underlying go-redis error. Denylist failures wrap
// denylist.ErrUnavailable.
package redis
