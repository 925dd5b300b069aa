package session_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/browniegate/pkg/cookie"
	"github.com/dmitrymomot/browniegate/pkg/denylist"
	"github.com/dmitrymomot/browniegate/pkg/logger"
	"github.com/dmitrymomot/browniegate/pkg/session"
)

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Lines(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(b.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func cookieFrom(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestClient_LoginCurrentLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := denylist.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	client, err := session.New(newCipher(t),
		session.WithDenylist(store),
		session.WithCookieManager(cookie.New()),
		session.WithTTL(30*time.Minute),
	)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	tok, err := client.Login(ctx, rec, "u123", session.Attributes{"plan": "pro"})
	require.NoError(t, err)

	c := cookieFrom(t, rec, "bg_session")
	require.NotNil(t, c)
	assert.Equal(t, tok.Value, c.Value)
	assert.Equal(t, 1800, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)

	payload, err := client.Current(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "u123", payload.UserID)

	logoutRec := httptest.NewRecorder()
	require.NoError(t, client.Logout(ctx, logoutRec, req))

	cleared := cookieFrom(t, logoutRec, "bg_session")
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	_, err = client.Current(ctx, req)
	assert.ErrorIs(t, err, session.ErrRevokedToken)

	t.Run("no cookie", func(t *testing.T) {
		_, err := client.Current(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, session.ErrTokenNotFound)

		assert.NoError(t, client.Logout(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))
	})
}

func TestClient_Logout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("without denylist clears the cookie", func(t *testing.T) {
		t.Parallel()
		client, err := session.New(newCipher(t))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		_, err = client.Login(ctx, rec, "u1", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookieFrom(t, rec, "bg_session"))

		out := httptest.NewRecorder()
		require.NoError(t, client.Logout(ctx, out, req))
		assert.Less(t, cookieFrom(t, out, "bg_session").MaxAge, 0)
	})

	t.Run("store unavailable is reported", func(t *testing.T) {
		t.Parallel()
		client, err := session.New(newCipher(t), session.WithDenylist(failingStore{}))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		_, err = client.Login(ctx, rec, "u1", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookieFrom(t, rec, "bg_session"))

		out := httptest.NewRecorder()
		err = client.Logout(ctx, out, req)
		assert.ErrorIs(t, err, session.ErrRevocationStoreUnavailable)
		assert.NotNil(t, cookieFrom(t, out, "bg_session"), "cookie is cleared even when revocation fails")
	})
}

func TestClient_Middleware(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	logs := &syncBuffer{}
	clock := &testClock{}
	store := denylist.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	client, err := session.New(newCipher(t),
		session.WithDenylist(store),
		session.WithClock(clock.Now),
		session.WithLogger(logger.New(
			logger.WithOutput(logs),
			logger.WithFormat(logger.FormatJSON),
			logger.WithLevel(slog.LevelDebug),
		)),
	)
	require.NoError(t, err)

	var (
		gotUser string
		gotOK   bool
	)
	handler := client.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotOK = session.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(c *http.Cookie) *httptest.ResponseRecorder {
		gotUser, gotOK = "", false
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		if c != nil {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	loginRec := httptest.NewRecorder()
	_, err = client.Login(ctx, loginRec, "u123", nil)
	require.NoError(t, err)
	valid := cookieFrom(t, loginRec, "bg_session")

	t.Run("valid token", func(t *testing.T) {
		rec := serve(valid)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, gotOK)
		assert.Equal(t, "u123", gotUser)
		assert.Nil(t, cookieFrom(t, rec, "bg_session"))
	})

	t.Run("no token", func(t *testing.T) {
		rec := serve(nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, gotOK)
	})

	t.Run("forged token is logged and cleared", func(t *testing.T) {
		forged := &http.Cookie{Name: "bg_session", Value: corruptLastByte(t, valid.Value)}
		rec := serve(forged)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, gotOK)

		cleared := cookieFrom(t, rec, "bg_session")
		require.NotNil(t, cleared)
		assert.Less(t, cleared.MaxAge, 0)

		var found bool
		for _, line := range logs.Lines(t) {
			if line["event"] == "session.authentication_failed" {
				found = true
				assert.Equal(t, "WARN", line["level"])
				assert.Equal(t, "/dashboard", line["path"])
				assert.NotContains(t, line, "token")
			}
		}
		assert.True(t, found, "authentication failure must be logged")
	})

	t.Run("expired token is cleared", func(t *testing.T) {
		clock.Advance(2 * time.Hour)
		t.Cleanup(func() { clock.Advance(-2 * time.Hour) })

		rec := serve(valid)
		assert.False(t, gotOK)
		cleared := cookieFrom(t, rec, "bg_session")
		require.NotNil(t, cleared)
		assert.Less(t, cleared.MaxAge, 0)
	})
}

func TestClient_Middleware_StoreUnavailable(t *testing.T) {
	t.Parallel()

	client, err := session.New(newCipher(t), session.WithDenylist(failingStore{}))
	require.NoError(t, err)

	loginRec := httptest.NewRecorder()
	_, err = client.Login(context.Background(), loginRec, "u1", nil)
	require.NoError(t, err)

	var gotOK bool
	handler := client.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookieFrom(t, loginRec, "bg_session"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, gotOK, "fails closed")
	assert.Nil(t, cookieFrom(t, rec, "bg_session"), "a transient failure keeps the cookie")
}

func TestClient_RequireAuth(t *testing.T) {
	t.Parallel()

	client, err := session.New(newCipher(t))
	require.NoError(t, err)

	handler := client.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := session.MustFromContext(r.Context())
		_, _ = w.Write([]byte(p.UserID))
	}))

	t.Run("unauthenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "bg_session", Value: "garbage"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated", func(t *testing.T) {
		loginRec := httptest.NewRecorder()
		_, err := client.Login(context.Background(), loginRec, "u123", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookieFrom(t, loginRec, "bg_session"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u123", rec.Body.String())
	})

	t.Run("behind middleware", func(t *testing.T) {
		loginRec := httptest.NewRecorder()
		_, err := client.Login(context.Background(), loginRec, "u456", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookieFrom(t, loginRec, "bg_session"))
		rec := httptest.NewRecorder()
		client.Middleware(handler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u456", rec.Body.String())
	})
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ok := session.FromContext(ctx)
	assert.False(t, ok)
	_, ok = session.UserIDFromContext(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { session.MustFromContext(ctx) })

	ctx = session.WithPayload(ctx, &session.Payload{ID: "t1", UserID: "u1"})
	p, ok := session.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "t1", p.ID)

	userID, ok := session.UserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", userID)
}
