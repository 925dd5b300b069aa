package browniegate

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/browniegate/pkg/denylist"
	"github.com/dmitrymomot/browniegate/pkg/session"
)

// Option configures the Client.
type Option func(*options)

type options struct {
	denylist       denylist.Store
	logger         *slog.Logger
	httpClient     *http.Client
	now            func() time.Time
	sessionOptions []session.Option
}

// WithDenylist sets the store that records revoked sessions.
func WithDenylist(store denylist.Store) Option {
	return func(o *options) {
		o.denylist = store
	}
}

// WithLogger sets the logger shared by all parts of the client.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithHTTPClient sets the HTTP client used for the identity API.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithSessionOptions passes extra options to the session client, e.g. a
// custom transport.
func WithSessionOptions(opts ...session.Option) Option {
	return func(o *options) {
		o.sessionOptions = append(o.sessionOptions, opts...)
	}
}
