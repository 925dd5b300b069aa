package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/browniegate/pkg/logger"
)

// Login issues a token for userID with the configured TTL and writes it
// through the transport.
func (c *Client) Login(ctx context.Context, w http.ResponseWriter, userID string, attrs Attributes) (*Token, error) {
	tok, err := c.Issue(ctx, userID, attrs, c.config.TTL)
	if err != nil {
		return nil, err
	}

	if err := c.transport.SetToken(w, tok.Value, c.config.TTL); err != nil {
		return nil, err
	}

	return tok, nil
}

// Current reads the token from the request and verifies it.
func (c *Client) Current(ctx context.Context, r *http.Request) (*Payload, error) {
	token, err := c.transport.GetToken(r)
	if err != nil {
		return nil, ErrTokenNotFound
	}
	return c.DecryptAndVerify(ctx, token)
}

// Logout revokes the request's token and clears it from the transport.
// The transport is cleared even when revocation fails. Tokens that cannot be
// revoked (none present, forged, already expired, or no denylist configured)
// are not an error.
func (c *Client) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	token, err := c.transport.GetToken(r)
	if err != nil {
		return c.transport.ClearToken(w)
	}

	revokeErr := c.Revoke(ctx, token)
	clearErr := c.transport.ClearToken(w)

	switch {
	case revokeErr == nil:
		return clearErr
	case errors.Is(revokeErr, ErrNoDenylist):
		c.logger.DebugContext(ctx, "logout without denylist, token stays valid until expiry")
		return clearErr
	case errors.Is(revokeErr, ErrInvalidToken), errors.Is(revokeErr, ErrAuthentication):
		c.logVerifyFailure(ctx, r, revokeErr)
		return clearErr
	default:
		return errors.Join(revokeErr, clearErr)
	}
}

// logVerifyFailure records a failed verification. Authentication failures
// are security events.
func (c *Client) logVerifyFailure(ctx context.Context, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrAuthentication):
		c.logger.WarnContext(ctx, "session authentication failed",
			logger.Event("session.authentication_failed"),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Error(err),
		)
	case errors.Is(err, ErrInvalidToken):
		c.logger.WarnContext(ctx, "invalid session token",
			logger.Event("session.invalid_token"),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Error(err),
		)
	case errors.Is(err, ErrRevocationStoreUnavailable):
		c.logger.ErrorContext(ctx, "revocation store unavailable",
			logger.Event("session.denylist_unavailable"),
			logger.Error(err),
		)
	default:
		c.logger.DebugContext(ctx, "session rejected", logger.Error(err))
	}
}
