package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Token is an issued session token. Value is what travels to the client.
type Token struct {
	// Value is the URL-safe text form of the envelope
	Value string

	// ID is the token identifier recorded on revocation
	ID string

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// String returns the token value.
func (t *Token) String() string {
	return t.Value
}

// Ciphertext returns the decoded envelope bytes.
func (t *Token) Ciphertext() []byte {
	if b, err := base64.URLEncoding.DecodeString(t.Value); err == nil {
		return b
	}
	if b, err := base64.RawURLEncoding.DecodeString(t.Value); err == nil {
		return b
	}
	return nil
}

// Payload is the verified content of a session token.
type Payload struct {
	ID         string
	UserID     string
	Attributes Attributes
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// TTL returns the lifetime the token was issued with.
func (p *Payload) TTL() time.Duration {
	return p.ExpiresAt.Sub(p.IssuedAt)
}

// claims is the sealed wire form. Fields are declared in key order so the
// encoding is deterministic together with the sorted attribute map. iat and
// exp are unix nanoseconds.
type claims struct {
	Attributes Attributes `json:"attrs"`
	ExpiresAt  int64      `json:"exp"`
	IssuedAt   int64      `json:"iat"`
	ID         string     `json:"jti"`
	Subject    string     `json:"sub"`
}

func encodeClaims(p *Payload) ([]byte, error) {
	return json.Marshal(claims{
		Attributes: p.Attributes,
		ExpiresAt:  p.ExpiresAt.UnixNano(),
		IssuedAt:   p.IssuedAt.UnixNano(),
		ID:         p.ID,
		Subject:    p.UserID,
	})
}

func decodeClaims(data []byte) (*Payload, error) {
	var c claims
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	switch {
	case strings.TrimSpace(c.ID) == "":
		return nil, fmt.Errorf("payload has no token id")
	case strings.TrimSpace(c.Subject) == "":
		return nil, fmt.Errorf("payload has no subject")
	case c.ExpiresAt <= 0:
		return nil, fmt.Errorf("payload has no expiry")
	case c.ExpiresAt < c.IssuedAt:
		return nil, fmt.Errorf("payload expires before it was issued")
	}

	if c.Attributes == nil {
		c.Attributes = Attributes{}
	}

	return &Payload{
		ID:         c.ID,
		UserID:     c.Subject,
		Attributes: c.Attributes,
		IssuedAt:   time.Unix(0, c.IssuedAt),
		ExpiresAt:  time.Unix(0, c.ExpiresAt),
	}, nil
}
