package session

import (
	"errors"
	"net/http"
	"time"
)

// CompositeTransport tries multiple transports in order
type CompositeTransport struct {
	transports []Transport
}

// NewCompositeTransport creates a composite transport that tries multiple transports
func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{
		transports: transports,
	}
}

// GetToken extracts the token from the first transport that has one
func (t *CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, transport := range t.transports {
		token, err := transport.GetToken(r)
		if err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrTokenNotFound
}

// SetToken sends the token via all configured transports
func (t *CompositeTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	var errs []error
	for _, transport := range t.transports {
		if err := transport.SetToken(w, token, ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ClearToken removes the token from all configured transports
func (t *CompositeTransport) ClearToken(w http.ResponseWriter) error {
	var errs []error
	for _, transport := range t.transports {
		if err := transport.ClearToken(w); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
