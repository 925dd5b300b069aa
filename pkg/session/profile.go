package session

import (
	"sort"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Profile is a read-only view of a verified session's user and attributes.
type Profile struct {
	userID    string
	attrs     Attributes
	expiresAt time.Time
}

// NewProfile projects a verified payload. The payload is copied.
func NewProfile(p *Payload) *Profile {
	if p == nil {
		return &Profile{attrs: Attributes{}}
	}
	return &Profile{
		userID:    p.UserID,
		attrs:     p.Attributes.clone(),
		expiresAt: p.ExpiresAt,
	}
}

// UserID returns the user identifier
func (p *Profile) UserID() string {
	return p.userID
}

// ExpiresAt returns when the underlying session expires
func (p *Profile) ExpiresAt() time.Time {
	return p.expiresAt
}

// Get retrieves an attribute value
func (p *Profile) Get(key string) (any, bool) {
	val, ok := p.attrs[norm.NFC.String(key)]
	return val, ok
}

// GetString retrieves a string attribute
func (p *Profile) GetString(key string) (string, bool) {
	val, ok := p.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an integer attribute. Fractional numbers are not integers.
func (p *Profile) GetInt(key string) (int64, bool) {
	val, ok := p.Get(key)
	if !ok {
		return 0, false
	}
	f, ok := val.(float64)
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// GetFloat retrieves a numeric attribute
func (p *Profile) GetFloat(key string) (float64, bool) {
	val, ok := p.Get(key)
	if !ok {
		return 0, false
	}
	f, ok := val.(float64)
	return f, ok
}

// GetBool retrieves a bool attribute
func (p *Profile) GetBool(key string) (bool, bool) {
	val, ok := p.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Keys returns the attribute keys in sorted order
func (p *Profile) Keys() []string {
	keys := make([]string, 0, len(p.attrs))
	for k := range p.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Attributes returns a copy of all attributes
func (p *Profile) Attributes() Attributes {
	return p.attrs.clone()
}
