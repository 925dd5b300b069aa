// Package browniegate is the Go client for the brownieGate hosted identity
// service.
//
// A Client bundles three parts that can also be used on their own:
//
//   - an envelope.Cipher holding the project's shared encryption key,
//   - an identity.Client for the remote API (code validation, user data),
//   - a session.Client issuing and verifying encrypted session cookies.
//
// # Login flow
//
// The hosted login page redirects back to the application with an encrypted,
// URL-encoded payload holding a one-time code and a timestamp. The
// application decrypts it, checks that it is fresh, exchanges the code for a
// user id and starts a session:
//
//	client, err := browniegate.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	http.HandleFunc("/auth/callback", func(w http.ResponseWriter, r *http.Request) {
//	    tok, err := client.Login(r.Context(), w, r.URL.Query().Get("payload"))
//	    if err != nil {
//	        http.Error(w, "login failed", http.StatusUnauthorized)
//	        return
//	    }
//	    _ = tok
//	    http.Redirect(w, r, "/", http.StatusSeeOther)
//	})
//
//	protected := client.Sessions().RequireAuth(dashboard)
//
// The steps are also available separately as DecryptPayload, VerifyPayload and
// Sessions().Login.
//
// # Configuration
//
// Config nests the per-package configurations. NewFromEnv reads them from
// BROWNIEGATE_* environment variables (and a .env file); NewFromFile reads a
// YAML file on top of the environment.
package browniegate
