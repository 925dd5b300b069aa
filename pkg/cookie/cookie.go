package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// maxValueSize is the largest value most browsers accept for a single cookie
// once the name and attributes are accounted for.
const maxValueSize = 4000

// Manager writes and reads cookies with shared default attributes.
type Manager struct {
	defaults Options
}

// New creates a Manager. Defaults are Path "/", HttpOnly and SameSite=Lax.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Defaults returns a copy of the manager's default options.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Set writes a cookie. Per-call options override the defaults.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "=;, \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if len(value) > maxValueSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrValueTooLarge, len(value), maxValueSize)
	}

	options := applyOptions(m.defaults, opts)

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}
	switch {
	case !options.Expires.IsZero():
		c.Expires = options.Expires
		if c.MaxAge == 0 {
			c.MaxAge = max(int(time.Until(options.Expires).Seconds()), -1)
		}
	case options.MaxAge > 0:
		// Expires for clients that ignore Max-Age.
		c.Expires = time.Now().Add(time.Duration(options.MaxAge) * time.Second)
	}

	http.SetCookie(w, c)
	return nil
}

// Get returns the value of the named cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete instructs the client to drop the named cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	})
}
