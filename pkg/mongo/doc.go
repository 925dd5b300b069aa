// Package mongo connects to MongoDB and provides a MongoDB-backed revocation
// denylist for session tokens.
//
// New connects with retries and verifies the connection with a ping.
// Denylist stores one document per revoked token, keyed by the token
// identifier, with a TTL index that lets the server drop entries after the
// token has expired. Denylist.Healthcheck pings the primary.
//
// # Usage
//
//	cfg := mongo.DefaultConfig()
//	cfg.ConnectionURL = "mongodb://localhost:27017"
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	store, err := mongo.NewDenylist(ctx, db.Collection(cfg.Collection))
//	if err != nil {
//		log.Fatal(err)
//	}
//	sessions, err := session.New(cipher, session.WithDenylist(store))
//
// # Error Handling
//
// Connection failures wrap ErrFailedToConnectToMongo; denylist failures wrap
// denylist.ErrUnavailable, which the session client reports as a retriable
// error.
package mongo
