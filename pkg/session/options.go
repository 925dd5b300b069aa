package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/browniegate/pkg/cookie"
	"github.com/dmitrymomot/browniegate/pkg/denylist"
)

// Option is a functional option for configuring the Client
type Option func(*Client)

// WithDenylist sets the store that records revoked tokens.
// Without one, tokens cannot be revoked and are never checked for revocation.
func WithDenylist(store denylist.Store) Option {
	return func(c *Client) {
		c.denylist = store
	}
}

// WithRemoteRevoker propagates revocations to the remote identity service
func WithRemoteRevoker(r RemoteRevoker) Option {
	return func(c *Client) {
		c.remote = r
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithCookieManager sets the cookie manager for the default cookie transport
func WithCookieManager(cookieMgr *cookie.Manager, opts ...cookie.Option) Option {
	return func(c *Client) {
		c.cookieManager = cookieMgr
		c.cookieOptions = opts
	}
}

// WithLogger sets the logger. Token values are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(c *Client) {
		c.config = config
	}
}

// WithTTL sets the lifetime of tokens issued by Login
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.config.TTL = ttl
	}
}
