package session

import (
	"errors"
	"net/http"
)

// Middleware verifies the request's token and attaches the payload to the
// request context. Requests without a valid token pass through without one.
// Expired, revoked and forged tokens are cleared from the client.
func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := c.transport.GetToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		payload, err := c.DecryptAndVerify(r.Context(), token)
		if err != nil {
			c.logVerifyFailure(r.Context(), r, err)
			if !IsRetriable(err) {
				_ = c.transport.ClearToken(w)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
	})
}

// RequireAuth is a middleware that requires a valid session.
// It reuses a payload attached by Middleware when present.
func (c *Client) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		payload, err := c.Current(r.Context(), r)
		if err != nil {
			if !errors.Is(err, ErrTokenNotFound) {
				c.logVerifyFailure(r.Context(), r, err)
			}
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
	})
}
