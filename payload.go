package browniegate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// LoginPayload is the decrypted content of the payload the hosted login page
// sends back to the application.
type LoginPayload struct {
	Code      string
	Timestamp time.Time

	// Raw holds every field of the payload, including unknown ones.
	Raw map[string]any
}

// timestampLayouts accepts ISO 8601 timestamps with or without a UTC offset,
// with a "T" or space separator and optional fractional seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// DecryptPayload URL-decodes, decrypts and parses a login payload. Failures
// wrap ErrInvalidPayload together with the cause, so errors.Is also matches
// envelope.ErrAuthentication for payloads sealed with another key.
func (c *Client) DecryptPayload(raw string) (*LoginPayload, error) {
	unescaped, err := url.PathUnescape(strings.TrimSpace(raw))
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if unescaped == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPayload)
	}

	plaintext, _, err := c.cipher.Open([]byte(unescaped))
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(plaintext, &fields); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	code, _ := fields["code"].(string)
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: missing code", ErrInvalidPayload)
	}

	ts, _ := fields["timestamp"].(string)
	timestamp, err := parseTimestamp(ts, c.location)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	return &LoginPayload{
		Code:      code,
		Timestamp: timestamp,
		Raw:       fields,
	}, nil
}
