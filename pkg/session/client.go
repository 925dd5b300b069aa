package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/browniegate/pkg/cookie"
	"github.com/dmitrymomot/browniegate/pkg/denylist"
	"github.com/dmitrymomot/browniegate/pkg/envelope"
	"github.com/dmitrymomot/browniegate/pkg/logger"
)

// RemoteRevoker propagates a revocation to a remote service
type RemoteRevoker interface {
	RevokeSession(ctx context.Context, tokenID string) error
}

// Client issues, verifies and revokes session tokens.
// It is safe for concurrent use.
type Client struct {
	cipher        envelope.Cipher
	config        Config
	denylist      denylist.Store
	remote        RemoteRevoker
	transport     Transport
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	logger        *slog.Logger
	now           func() time.Time
}

// New creates a session client sealing tokens with cipher.
func New(cipher envelope.Cipher, opts ...Option) (*Client, error) {
	if cipher == nil {
		return nil, ErrNoCipher
	}

	c := &Client{
		cipher: cipher,
		config: DefaultConfig(),
		logger: logger.Discard(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.config.TTL <= 0 {
		return nil, ErrInvalidTTL
	}
	if c.config.ClockSkew < 0 {
		c.config.ClockSkew = 0
	}

	if c.transport == nil {
		if c.cookieManager == nil {
			c.cookieManager = cookie.New(cookie.WithSecure(c.config.SecureCookies))
		}
		c.transport = NewCookieTransportWithSecurity(c.cookieManager, c.config.CookieName, c.config.SecureCookies, c.cookieOptions...)
	}

	c.logger = c.logger.With(logger.Component("session"))

	return c, nil
}

// Config returns the client configuration
func (c *Client) Config() Config {
	return c.config
}

// Issue creates a token for userID carrying attrs that expires after ttl.
// Two calls with identical arguments produce different tokens.
//
// Attributes are normalised before sealing: keys are NFC-normalised and every
// number becomes a float64, so an int 5 or a float32 comes back from
// DecryptAndVerify as float64(5) or the widened float64. Use Profile.GetInt
// to read integers back.
func (c *Client) Issue(ctx context.Context, userID string, attrs Attributes, ttl time.Duration) (*Token, error) {
	userID = norm.NFC.String(userID)
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	normalized, err := normalizeAttributes(attrs)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Join(ErrTokenGeneration, err)
	}

	// Round trip through the nanosecond claims so the token reports exactly
	// what a verifier will read.
	issuedAt := time.Unix(0, c.now().UnixNano())
	expiresAt := issuedAt.Add(ttl)

	payload := &Payload{
		ID:         id.String(),
		UserID:     userID,
		Attributes: normalized,
		IssuedAt:   issuedAt,
		ExpiresAt:  expiresAt,
	}

	plaintext, err := encodeClaims(payload)
	if err != nil {
		return nil, errors.Join(ErrEncryption, err)
	}

	sealed, err := c.cipher.Seal(plaintext)
	if err != nil {
		return nil, errors.Join(ErrEncryption, err)
	}

	c.logger.DebugContext(ctx, "session issued",
		logger.Event("session.issued"),
		logger.TokenID(payload.ID),
		logger.UserID(userID),
	)

	return &Token{
		Value:     string(sealed),
		ID:        payload.ID,
		IssuedAt:  payload.IssuedAt,
		ExpiresAt: payload.ExpiresAt,
	}, nil
}

// DecryptAndVerify authenticates token and returns its payload if it is
// unexpired and unrevoked. It has no side effects.
func (c *Client) DecryptAndVerify(ctx context.Context, token string) (*Payload, error) {
	payload, sealedAt, err := c.open(token)
	if err != nil {
		return nil, err
	}

	if err := c.checkTimes(payload, sealedAt); err != nil {
		return nil, err
	}

	if c.denylist != nil {
		revoked, err := c.denylist.IsRevoked(ctx, payload.ID)
		if err != nil {
			return nil, errors.Join(ErrRevocationStoreUnavailable, err)
		}
		if revoked {
			return nil, ErrRevokedToken
		}
	}

	return payload, nil
}

// Verify is an alias for DecryptAndVerify.
func (c *Client) Verify(ctx context.Context, token string) (*Payload, error) {
	return c.DecryptAndVerify(ctx, token)
}

// Revoke invalidates token. Revoking an expired or already revoked token is a
// no-op. Forged or malformed tokens cannot be revoked and return the
// verification error.
func (c *Client) Revoke(ctx context.Context, token string) error {
	if c.denylist == nil {
		return ErrNoDenylist
	}

	payload, sealedAt, err := c.open(token)
	if err != nil {
		return err
	}

	if err := c.checkTimes(payload, sealedAt); err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return nil
		}
		return err
	}

	// Verifiers accept a token until exp on their own clock, which may lag
	// the store's by up to ClockSkew.
	until := payload.ExpiresAt.Add(c.config.ClockSkew)
	if err := c.denylist.Revoke(ctx, payload.ID, until); err != nil {
		c.logger.ErrorContext(ctx, "failed to record revocation",
			logger.TokenID(payload.ID),
			logger.Error(err),
		)
		return errors.Join(ErrRevocationStoreUnavailable, err)
	}

	if c.remote != nil {
		if err := c.remote.RevokeSession(ctx, payload.ID); err != nil {
			c.logger.ErrorContext(ctx, "failed to propagate revocation",
				logger.TokenID(payload.ID),
				logger.Error(err),
			)
			return errors.Join(ErrRevocationStoreUnavailable, err)
		}
	}

	c.logger.InfoContext(ctx, "session revoked",
		logger.Event("session.revoked"),
		logger.TokenID(payload.ID),
		logger.UserID(payload.UserID),
	)

	return nil
}

// Status classifies token without returning its payload. An error is only
// returned when the state cannot be determined.
func (c *Client) Status(ctx context.Context, token string) (State, error) {
	_, err := c.DecryptAndVerify(ctx, token)
	switch {
	case err == nil:
		return StateValid, nil
	case errors.Is(err, ErrExpiredToken):
		return StateExpired, nil
	case errors.Is(err, ErrRevokedToken):
		return StateRevoked, nil
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrAuthentication):
		return StateInvalid, nil
	default:
		return StateUnknown, err
	}
}

// Profile verifies token and returns a read-only view of its user and attributes.
func (c *Client) Profile(ctx context.Context, token string) (*Profile, error) {
	payload, err := c.DecryptAndVerify(ctx, token)
	if err != nil {
		return nil, err
	}
	return NewProfile(payload), nil
}

// open authenticates and decodes token without any time or revocation checks.
func (c *Client) open(token string) (*Payload, time.Time, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, time.Time{}, ErrInvalidToken
	}

	plaintext, sealedAt, err := c.cipher.Open([]byte(token))
	if err != nil {
		if errors.Is(err, envelope.ErrAuthentication) {
			return nil, time.Time{}, errors.Join(ErrAuthentication, err)
		}
		return nil, time.Time{}, errors.Join(ErrInvalidToken, err)
	}

	payload, err := decodeClaims(plaintext)
	if err != nil {
		return nil, time.Time{}, errors.Join(ErrInvalidToken, err)
	}

	return payload, sealedAt, nil
}

func (c *Client) checkTimes(p *Payload, sealedAt time.Time) error {
	now := c.now()
	horizon := now.Add(c.config.ClockSkew)

	if sealedAt.After(horizon) || p.IssuedAt.After(horizon) {
		return ErrInvalidToken
	}
	if !now.Before(p.ExpiresAt) {
		return ErrExpiredToken
	}
	if c.config.MaxTokenAge > 0 && now.After(sealedAt.Add(c.config.MaxTokenAge)) {
		return ErrExpiredToken
	}
	return nil
}
