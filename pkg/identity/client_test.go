package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/browniegate/pkg/identity"
	"github.com/dmitrymomot/browniegate/pkg/requestid"
	"github.com/dmitrymomot/browniegate/pkg/session"
)

var _ session.RemoteRevoker = (*identity.Client)(nil)

const (
	testAPIKey  = "test-api-key"
	testProject = "6f1c1c3e-8d0b-4f8e-9a51-2f7c3f6f4c1a"
)

// fakeAPI is an in-process identity API.
type fakeAPI struct {
	mu           sync.Mutex
	headers      []http.Header
	userFailures atomic.Int32
	revoked      []string
}

func (f *fakeAPI) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headers = append(f.headers, r.Header.Clone())
}

func (f *fakeAPI) lastHeader() http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.headers) == 0 {
		return nil
	}
	return f.headers[len(f.headers)-1]
}

func (f *fakeAPI) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.headers)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) router() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.record(r)
			if r.Header.Get("authorization") != testAPIKey {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad key"})
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		if f.userFailures.Load() > 0 {
			f.userFailures.Add(-1)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "try later"})
			return
		}
		switch id := chi.URLParam(r, "id"); id {
		case "u123":
			writeJSON(w, http.StatusOK, map[string]any{
				"id":    "u123",
				"email": "u123@example.com",
				"plan":  "pro",
				"seats": 3,
				"roles": []string{"admin"},
			})
		case "broken":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not json"))
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such user"})
		}
	})

	r.Post("/session/revoke", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TokenID string `json:"token_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TokenID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token_id required"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, id := range f.revoked {
			if id == body.TokenID {
				writeJSON(w, http.StatusConflict, map[string]string{"error": "already revoked"})
				return
			}
		}
		f.revoked = append(f.revoked, body.TokenID)
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/api/validate", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("code") {
		case "good-code":
			writeJSON(w, http.StatusOK, map[string]any{"validated": true, "user_id": "u123"})
		case "server-error":
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"validated": false})
		}
	})

	r.Post("/api/get_user_data", func(w http.ResponseWriter, r *http.Request) {
		out := map[string]any{}
		for _, field := range r.URL.Query()["required_data"] {
			out[field] = field + "-value"
		}
		writeJSON(w, http.StatusOK, out)
	})

	return r
}

func newTestClient(t *testing.T, api *fakeAPI, mutate ...func(*identity.Config)) *identity.Client {
	t.Helper()
	srv := httptest.NewServer(api.router())
	t.Cleanup(srv.Close)

	cfg := identity.DefaultConfig()
	cfg.BaseURL = srv.URL + "/"
	cfg.APIKey = testAPIKey
	cfg.ProjectUUID = testProject
	cfg.RetryInterval = time.Millisecond
	for _, m := range mutate {
		m(&cfg)
	}

	client, err := identity.New(cfg)
	require.NoError(t, err)
	return client
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := identity.Config{BaseURL: "https://auth.example.com", APIKey: "k", ProjectUUID: testProject}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*identity.Config)
		err    error
	}{
		{"missing url", func(c *identity.Config) { c.BaseURL = "" }, identity.ErrMissingBaseURL},
		{"bad scheme", func(c *identity.Config) { c.BaseURL = "ftp://auth.example.com" }, identity.ErrInvalidBaseURL},
		{"no host", func(c *identity.Config) { c.BaseURL = "https://" }, identity.ErrInvalidBaseURL},
		{"missing key", func(c *identity.Config) { c.APIKey = " " }, identity.ErrMissingAPIKey},
		{"bad uuid", func(c *identity.Config) { c.ProjectUUID = "project-1" }, identity.ErrInvalidProjectUUID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.err)

			_, err := identity.New(cfg)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClient_Headers(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	client := newTestClient(t, api)

	ctx := requestid.WithContext(context.Background(), "req-42")
	_, err := client.GetUser(ctx, "u123")
	require.NoError(t, err)

	h := api.lastHeader()
	require.NotNil(t, h)
	assert.Equal(t, testAPIKey, h.Get("authorization"))
	assert.Equal(t, testProject, h.Get("project-uuid"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, "application/json", h.Get("Accept"))
	assert.Equal(t, "browniegate-go", h.Get("User-Agent"))
	assert.Equal(t, "req-42", h.Get(requestid.Header))
}

func TestClient_GetUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, &fakeAPI{})

		user, err := client.GetUser(ctx, "u123")
		require.NoError(t, err)
		assert.Equal(t, "u123", user.ID)
		assert.Equal(t, "u123@example.com", user.Data["email"])
		assert.Equal(t, map[string]any{
			"email": "u123@example.com",
			"plan":  "pro",
			"seats": float64(3),
		}, user.Scalars())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, &fakeAPI{})

		_, err := client.GetUser(ctx, "nobody")
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, &fakeAPI{})

		_, err := client.GetUser(ctx, "")
		assert.ErrorIs(t, err, identity.ErrEmptyArgument)
	})

	t.Run("invalid body", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, &fakeAPI{})

		_, err := client.GetUser(ctx, "broken")
		assert.ErrorIs(t, err, identity.ErrInvalidResponse)
	})

	t.Run("retries server errors", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		api.userFailures.Store(2)
		client := newTestClient(t, api)

		user, err := client.GetUser(ctx, "u123")
		require.NoError(t, err)
		assert.Equal(t, "u123", user.ID)
		assert.Equal(t, 3, api.requests())
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		api.userFailures.Store(10)
		client := newTestClient(t, api, func(c *identity.Config) { c.RetryAttempts = 2 })

		_, err := client.GetUser(ctx, "u123")
		require.Error(t, err)
		assert.ErrorIs(t, err, identity.ErrUnexpectedStatus)

		var apiErr *identity.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "try later")
		assert.Equal(t, 2, api.requests())
	})
}

func TestClient_Unauthorized(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	client := newTestClient(t, api, func(c *identity.Config) { c.APIKey = "wrong" })

	_, err := client.GetUser(context.Background(), "u123")
	assert.ErrorIs(t, err, identity.ErrUnauthorized)
	assert.Equal(t, 1, api.requests(), "client errors are not retried")
}

func TestClient_RevokeSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	api := &fakeAPI{}
	client := newTestClient(t, api)

	require.NoError(t, client.RevokeSession(ctx, "jti-1"))
	require.NoError(t, client.RevokeSession(ctx, "jti-1"), "already revoked is not an error")
	assert.Equal(t, []string{"jti-1"}, api.revoked)

	assert.ErrorIs(t, client.RevokeSession(ctx, " "), identity.ErrEmptyArgument)
}

func TestClient_ValidateCode(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("validated", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		client := newTestClient(t, api)

		userID, err := client.ValidateCode(ctx, "good-code")
		require.NoError(t, err)
		assert.Equal(t, "u123", userID)
	})

	t.Run("not validated", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, &fakeAPI{})

		_, err := client.ValidateCode(ctx, "stale-code")
		assert.ErrorIs(t, err, identity.ErrNotValidated)
	})

	t.Run("server error is not retried", func(t *testing.T) {
		t.Parallel()
		api := &fakeAPI{}
		client := newTestClient(t, api)

		_, err := client.ValidateCode(ctx, "server-error")
		assert.ErrorIs(t, err, identity.ErrUnexpectedStatus)
		assert.Equal(t, 1, api.requests())
	})

	t.Run("empty code", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, &fakeAPI{})

		_, err := client.ValidateCode(ctx, "")
		assert.ErrorIs(t, err, identity.ErrEmptyArgument)
	})
}

func TestClient_GetUserData(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, &fakeAPI{})

	data, err := client.GetUserData(context.Background(), "email", "name", " ")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"email": "email-value",
		"name":  "name-value",
	}, data)
}

func TestClient_RequestFailed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client, err := identity.New(identity.Config{
		BaseURL:       baseURL,
		APIKey:        testAPIKey,
		ProjectUUID:   testProject,
		RetryAttempts: 2,
		RetryInterval: time.Millisecond,
	})
	require.NoError(t, err)

	_, err = client.ValidateCode(context.Background(), "good-code")
	assert.ErrorIs(t, err, identity.ErrRequestFailed)

	_, err = client.GetUser(context.Background(), "u123")
	assert.ErrorIs(t, err, identity.ErrRequestFailed)
}

func TestClient_WithHTTPClient(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	srv := httptest.NewServer(api.router())
	t.Cleanup(srv.Close)

	hc := &http.Client{Timeout: time.Second}
	client, err := identity.New(identity.Config{
		BaseURL:     srv.URL,
		APIKey:      testAPIKey,
		ProjectUUID: testProject,
		UserAgent:   "custom-agent",
	}, identity.WithHTTPClient(hc))
	require.NoError(t, err)
	assert.Nil(t, hc.Transport, "the caller's client is not modified")

	_, err = client.GetUser(requestid.WithContext(context.Background(), "abc"), "u123")
	require.NoError(t, err)
	assert.Equal(t, "custom-agent", api.lastHeader().Get("User-Agent"))
	assert.Equal(t, "abc", api.lastHeader().Get(requestid.Header))
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	err := &identity.APIError{StatusCode: http.StatusTeapot, Body: "short and stout"}
	assert.ErrorIs(t, err, identity.ErrUnexpectedStatus)
	assert.True(t, strings.Contains(err.Error(), "418"))
	assert.Contains(t, (&identity.APIError{StatusCode: 500}).Error(), "500")
}
