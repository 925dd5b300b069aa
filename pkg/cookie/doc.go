// Package cookie writes, reads and clears HTTP cookies with consistent
// security attributes.
//
// Values handed to the Manager are stored verbatim. Session tokens are
// already sealed envelopes, so the package adds no signing or encryption of
// its own; its job is to make sure every cookie carries the same Path,
// Domain, Secure, HttpOnly and SameSite settings and that oversized values are
// rejected before a browser silently drops them.
//
// # Usage
//
//	m := cookie.New(cookie.WithSecure(true))
//
//	_ = m.Set(w, "bg_session", token, cookie.WithMaxAge(3600))
//	value, err := m.Get(r, "bg_session")
//	m.Delete(w, "bg_session")
//
// Defaults are Path "/", HttpOnly and SameSite=Lax. Per-call options override
// the manager defaults without modifying them.
//
// # Configuration
//
// NewFromConfig builds a Manager from Config, whose fields carry env tags so
// it can be loaded with pkg/config.
//
// # Error Handling
//
// Get returns ErrCookieNotFound when the cookie is absent. Set returns
// ErrInvalidName or ErrValueTooLarge for cookies a browser would refuse.
package cookie
