// Package session issues, verifies and revokes encrypted session tokens.
//
// A session token is an authenticated envelope (see package envelope) around
// a small JSON document holding a token identifier, the user identifier, a
// flat attribute map and the issue and expiry times. Tokens are
// self-contained: verification needs only the shared key. Revocation is
// recorded in an injected denylist.Store keyed by the token identifier, so a
// revoked token is rejected even though its ciphertext is still authentic.
//
// # Lifecycle
//
// A token is valid from issue until its expiry time. It leaves the valid state
// either by expiring or by being revoked. Both are terminal.
//
//	issued ──► valid ──► expired
//	             │
//	             └──────► revoked
//
// # Usage
//
//	cipher, _ := envelope.NewFernet(os.Getenv("BROWNIEGATE_ENCRYPTION_KEYS"))
//	client, err := session.New(cipher,
//	    session.WithDenylist(denylist.NewMemoryStore(time.Minute)),
//	)
//	if err != nil {
//	    return err
//	}
//
//	tok, _ := client.Issue(ctx, "u123", session.Attributes{"plan": "pro"}, time.Hour)
//	payload, err := client.DecryptAndVerify(ctx, tok.Value)
//	switch {
//	case errors.Is(err, session.ErrExpiredToken):
//	case errors.Is(err, session.ErrRevokedToken):
//	case session.IsRetriable(err):
//	}
//
// # HTTP
//
// Login writes a freshly issued token through the configured Transport (a
// cookie by default), Current reads and verifies it, and Logout revokes it and
// clears the transport. Middleware attaches the verified Payload to the request
// context; RequireAuth rejects requests without one.
//
//	r.Use(client.Middleware)
//	r.With(client.RequireAuth).Get("/me", func(w http.ResponseWriter, r *http.Request) {
//	    userID, _ := session.UserIDFromContext(r.Context())
//	    ...
//	})
//
// # Errors
//
// Verification failures are reported as distinct kinds: ErrInvalidToken,
// ErrAuthentication, ErrExpiredToken, ErrRevokedToken and
// ErrRevocationStoreUnavailable. Only the last one is retriable; the client
// fails closed when the denylist cannot be consulted.
package session
