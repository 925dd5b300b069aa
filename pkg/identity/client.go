package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrymomot/browniegate/pkg/logger"
	"github.com/dmitrymomot/browniegate/pkg/requestid"
)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 1 << 20

// maxErrorExcerpt bounds how much of an error body ends up in APIError.
const maxErrorExcerpt = 256

// Client talks to the identity API. It is safe for concurrent use.
type Client struct {
	baseURL       string
	apiKey        string
	projectUUID   string
	userAgent     string
	retryAttempts int
	retryInterval time.Duration
	http          *http.Client
	logger        *slog.Logger
}

// New validates cfg and creates a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		projectUUID:   cfg.ProjectUUID,
		userAgent:     cfg.UserAgent,
		retryAttempts: max(cfg.RetryAttempts, 1),
		retryInterval: cfg.RetryInterval,
		logger:        logger.Discard(),
	}
	if c.userAgent == "" {
		c.userAgent = defaults.UserAgent
	}
	if c.retryInterval <= 0 {
		c.retryInterval = defaults.RetryInterval
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = cleanhttp.DefaultPooledClient()
		c.http.Timeout = cfg.Timeout
		if c.http.Timeout <= 0 {
			c.http.Timeout = defaults.Timeout
		}
	}
	// Copy so the caller's client is left untouched.
	hc := *c.http
	hc.Transport = requestid.NewTransport(c.http.Transport)
	c.http = &hc

	c.logger = c.logger.With(logger.Component("identity"))

	return c, nil
}

// GetUser fetches a user record by id.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: user id", ErrEmptyArgument)
	}

	var user User
	err := c.do(ctx, request{
		method:     http.MethodGet,
		path:       "/user/" + url.PathEscape(id),
		out:        &user,
		idempotent: true,
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.ID == "" {
		user.ID = id
	}
	return &user, nil
}

// RevokeSession tells the service that the session with tokenID is revoked.
// A session the service already knows as revoked is not an error.
func (c *Client) RevokeSession(ctx context.Context, tokenID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return fmt.Errorf("%w: token id", ErrEmptyArgument)
	}

	err := c.do(ctx, request{
		method:     http.MethodPost,
		path:       "/session/revoke",
		body:       map[string]string{"token_id": tokenID},
		idempotent: true,
	})
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		return nil
	}
	return err
}

type validateResponse struct {
	Validated bool   `json:"validated"`
	UserID    string `json:"user_id"`
}

// ValidateCode exchanges a one-time login code for the user id it was issued
// to. Codes are single use, so the call is never retried.
func (c *Client) ValidateCode(ctx context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: code", ErrEmptyArgument)
	}

	var resp validateResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/validate",
		query:  url.Values{"code": {code}},
		out:    &resp,
	})
	if err != nil {
		return "", err
	}

	if !resp.Validated {
		return "", ErrNotValidated
	}
	if resp.UserID == "" {
		return "", fmt.Errorf("%w: validated without user id", ErrInvalidResponse)
	}
	return resp.UserID, nil
}

// GetUserData requests the named fields of the user data shared with the
// project.
func (c *Client) GetUserData(ctx context.Context, fields ...string) (map[string]any, error) {
	query := url.Values{}
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			query.Add("required_data", f)
		}
	}

	var data map[string]any
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/get_user_data",
		query:  query,
		out:    &data,
	})
	if err != nil {
		return nil, err
	}

	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

type request struct {
	method     string
	path       string
	query      url.Values
	body       any
	out        any
	idempotent bool
}

func (c *Client) do(ctx context.Context, r request) error {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var payload []byte
	if r.body != nil {
		var err error
		if payload, err = json.Marshal(r.body); err != nil {
			return fmt.Errorf("identity: encode request: %w", err)
		}
	}

	attempts := 1
	if r.idempotent {
		attempts = c.retryAttempts
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(c.retryInterval))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := c.roundTrip(ctx, r, endpoint, payload, attempt)
		if err != nil && r.idempotent && retriable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) roundTrip(ctx context.Context, r request, endpoint string, payload []byte, attempt int) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("authorization", c.apiKey)
	req.Header.Set("project-uuid", c.projectUUID)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "identity request failed",
			logger.Method(r.method),
			logger.Path(r.path),
			logger.Attempt(attempt),
			logger.Error(err),
		)
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}

	c.logger.DebugContext(ctx, "identity request",
		logger.Method(r.method),
		logger.Path(r.path),
		logger.StatusCode(resp.StatusCode),
		logger.Attempt(attempt),
		logger.Duration(time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{StatusCode: resp.StatusCode, Body: excerpt(data)}
	}

	if r.out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, r.out); err != nil {
		return errors.Join(ErrInvalidResponse, err)
	}
	return nil
}

// retriable reports whether a failed attempt may succeed when repeated.
func retriable(err error) bool {
	if errors.Is(err, ErrRequestFailed) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}

func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorExcerpt {
		s = s[:maxErrorExcerpt] + "..."
	}
	return s
}
