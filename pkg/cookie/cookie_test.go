package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/browniegate/pkg/cookie"
)

func TestManager_SetGet(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"simple", "test", "value"},
		{"empty value", "empty", ""},
		{"fernet token", "bg_session", "gAAAAABn0x4Z5Yt3b9Q-abc_def=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			require.NoError(t, m.Set(w, tt.key, tt.value))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for _, c := range w.Result().Cookies() {
				r.AddCookie(c)
			}

			got, err := m.Get(r, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestManager_Defaults(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithSecure(true), cookie.WithDomain("example.com"))

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "sid", "v", cookie.WithMaxAge(60)))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, 60, c.MaxAge)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.False(t, c.Expires.IsZero())

	// Per-call options must not leak into the defaults.
	assert.Equal(t, 0, m.Defaults().MaxAge)
}

func TestManager_WithExpires(t *testing.T) {
	t.Parallel()
	m := cookie.New()
	expires := time.Now().Add(2 * time.Hour).Truncate(time.Second)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "sid", "v", cookie.WithExpires(expires)))

	c := w.Result().Cookies()[0]
	assert.True(t, expires.Equal(c.Expires), "got %s", c.Expires)
	assert.InDelta(t, 7200, c.MaxAge, 2)

	w = httptest.NewRecorder()
	require.NoError(t, m.Set(w, "sid", "v", cookie.WithExpires(time.Now().Add(-time.Hour))))
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}

func TestManager_OverrideOptions(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "sid", "v",
		cookie.WithPath("/app"),
		cookie.WithHTTPOnly(false),
		cookie.WithSameSite(http.SameSiteStrictMode),
	))

	c := w.Result().Cookies()[0]
	assert.Equal(t, "/app", c.Path)
	assert.False(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestManager_SetErrors(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	err := m.Set(httptest.NewRecorder(), "", "v")
	assert.ErrorIs(t, err, cookie.ErrInvalidName)

	err = m.Set(httptest.NewRecorder(), "bad name", "v")
	assert.ErrorIs(t, err, cookie.ErrInvalidName)

	err = m.Set(httptest.NewRecorder(), "big", strings.Repeat("a", 5000))
	assert.ErrorIs(t, err, cookie.ErrValueTooLarge)
}

func TestManager_GetMissing(t *testing.T) {
	t.Parallel()
	m := cookie.New()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.Get(r, "missing")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithSecure(true))

	w := httptest.NewRecorder()
	m.Delete(w, "sid")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.DefaultConfig()
	cfg.Domain = "example.com"
	cfg.Secure = true
	cfg.SameSite = http.SameSiteStrictMode

	m := cookie.NewFromConfig(cfg, cookie.WithPath("/auth"))
	d := m.Defaults()
	assert.Equal(t, "/auth", d.Path)
	assert.Equal(t, "example.com", d.Domain)
	assert.True(t, d.Secure)
	assert.True(t, d.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, d.SameSite)
}
