package identity

import (
	"log/slog"
	"net/http"
)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default HTTP client. Its transport is
// still wrapped to propagate request ids.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
