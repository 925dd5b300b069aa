// Package pg connects to PostgreSQL with pgx/v5 and provides a Postgres-backed
// revocation denylist for session tokens.
//
//   - Config is populated from environment variables via
//     github.com/caarlos0/env and controls pool limits and retries.
//   - Connect opens a *pgxpool.Pool, retrying with exponential backoff until
//     the database becomes available.
//   - Migrate applies the embedded goose migrations that create the
//     revoked_sessions table.
//   - Denylist implements denylist.Store on that table; its Healthcheck
//     also reports missing migrations.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    panic(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    panic(err)
//	}
//
//	store := pg.NewDenylist(pool)
//	sessions, err := session.New(cipher, session.WithDenylist(store))
//
// Expired entries are kept until DeleteExpired is called; schedule it with the
// application's job runner.
package pg
