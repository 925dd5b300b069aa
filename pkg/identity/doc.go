// Package identity is a client for the hosted identity API: user lookup,
// login code validation, user data retrieval and session revocation
// propagation.
//
// Every request carries the project's API key in the authorization header,
// the project UUID in the project-uuid header, and the caller's request id
// (see package requestid) when the context has one. Idempotent requests are
// retried with exponential backoff on transport errors and 5xx responses.
//
// # Usage
//
//	client, err := identity.New(identity.Config{
//	    BaseURL:     "https://auth.example.com",
//	    APIKey:      os.Getenv("BROWNIEGATE_API_KEY"),
//	    ProjectUUID: os.Getenv("BROWNIEGATE_PROJECT_UUID"),
//	})
//	if err != nil {
//	    return err
//	}
//
//	userID, err := client.ValidateCode(ctx, code)
//	switch {
//	case errors.Is(err, identity.ErrNotValidated):
//	    // reject the login
//	case err != nil:
//	    // API unreachable or misconfigured
//	}
//
// Client satisfies session.RemoteRevoker, so revocations can be forwarded:
//
//	sessions, _ := session.New(cipher,
//	    session.WithDenylist(store),
//	    session.WithRemoteRevoker(client),
//	)
package identity
