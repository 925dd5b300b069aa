package browniegate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/browniegate/pkg/envelope"
	"github.com/dmitrymomot/browniegate/pkg/identity"
	"github.com/dmitrymomot/browniegate/pkg/logger"
	"github.com/dmitrymomot/browniegate/pkg/session"
)

// Client is the brownieGate client. It is safe for concurrent use.
type Client struct {
	cipher       envelope.Cipher
	identity     *identity.Client
	sessions     *session.Client
	location     *time.Location
	maxSkew      time.Duration
	fetchProfile bool
	logger       *slog.Logger
	now          func() time.Time
}

// New creates a Client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := options{
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Discard()
	}
	if o.now == nil {
		o.now = time.Now
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	cipher, err := envelope.NewFromConfig(cfg.Envelope)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	identityOpts := []identity.Option{identity.WithLogger(o.logger)}
	if o.httpClient != nil {
		identityOpts = append(identityOpts, identity.WithHTTPClient(o.httpClient))
	}
	idc, err := identity.New(cfg.Identity, identityOpts...)
	if err != nil {
		return nil, err
	}

	sessionOpts := []session.Option{
		session.WithLogger(o.logger),
		session.WithClock(o.now),
	}
	if o.denylist != nil {
		sessionOpts = append(sessionOpts, session.WithDenylist(o.denylist))
	}
	if cfg.PropagateRevocation {
		sessionOpts = append(sessionOpts, session.WithRemoteRevoker(idc))
	}
	sessionOpts = append(sessionOpts, o.sessionOptions...)

	sessions, err := session.NewFromConfig(cfg.Session, cipher, sessionOpts...)
	if err != nil {
		return nil, err
	}

	maxSkew := cfg.PayloadMaxSkew
	if maxSkew <= 0 {
		maxSkew = DefaultConfig().PayloadMaxSkew
	}

	return &Client{
		cipher:       cipher,
		identity:     idc,
		sessions:     sessions,
		location:     loc,
		maxSkew:      maxSkew,
		fetchProfile: cfg.FetchProfile,
		logger:       o.logger.With(logger.Component("browniegate")),
		now:          o.now,
	}, nil
}

// Sessions returns the session client.
func (c *Client) Sessions() *session.Client {
	return c.sessions
}

// Identity returns the identity API client.
func (c *Client) Identity() *identity.Client {
	return c.identity
}

// Cipher returns the envelope cipher holding the shared key.
func (c *Client) Cipher() envelope.Cipher {
	return c.cipher
}

// VerifyPayload checks that the payload is fresh and exchanges its code for
// the user id. The code is single use.
func (c *Client) VerifyPayload(ctx context.Context, p *LoginPayload) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%w: nil payload", ErrInvalidPayload)
	}

	now := c.now()
	if p.Timestamp.After(now.Add(c.maxSkew)) || p.Timestamp.Before(now.Add(-c.maxSkew)) {
		return "", ErrPayloadOutOfDate
	}

	return c.identity.ValidateCode(ctx, p.Code)
}

// Login runs the whole callback flow: decrypt and verify the payload, then
// issue a session for the user and write it to the response.
func (c *Client) Login(ctx context.Context, w http.ResponseWriter, raw string) (*session.Token, error) {
	payload, err := c.DecryptPayload(raw)
	if err != nil {
		c.logger.WarnContext(ctx, "login payload rejected",
			logger.Event("login.rejected"),
			logger.Error(err),
		)
		return nil, err
	}

	userID, err := c.VerifyPayload(ctx, payload)
	if err != nil {
		c.logger.WarnContext(ctx, "login payload not verified",
			logger.Event("login.rejected"),
			logger.Error(err),
		)
		return nil, err
	}

	attrs := session.Attributes{}
	if c.fetchProfile {
		user, err := c.identity.GetUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("fetch profile: %w", err)
		}
		for k, v := range user.Scalars() {
			attrs[k] = v
		}
	}

	tok, err := c.sessions.Login(ctx, w, userID, attrs)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "user logged in",
		logger.Event("login.succeeded"),
		logger.UserID(userID),
		logger.TokenID(tok.ID),
	)

	return tok, nil
}

// GetUserData requests the named fields of the user data shared with the
// project.
func (c *Client) GetUserData(ctx context.Context, fields ...string) (map[string]any, error) {
	return c.identity.GetUserData(ctx, fields...)
}

// GetUser fetches a user record from the identity API.
func (c *Client) GetUser(ctx context.Context, id string) (*identity.User, error) {
	return c.identity.GetUser(ctx, id)
}
