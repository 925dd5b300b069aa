package identity

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrMissingBaseURL     = errors.New("identity: base url is required")
	ErrInvalidBaseURL     = errors.New("identity: invalid base url")
	ErrMissingAPIKey      = errors.New("identity: api key is required")
	ErrInvalidProjectUUID = errors.New("identity: invalid project uuid")

	// Request errors
	ErrUnauthorized     = errors.New("identity: unauthorized")
	ErrUserNotFound     = errors.New("identity: user not found")
	ErrNotValidated     = errors.New("identity: code not validated")
	ErrRequestFailed    = errors.New("identity: request failed")
	ErrUnexpectedStatus = errors.New("identity: unexpected status")
	ErrInvalidResponse  = errors.New("identity: invalid response")
	ErrEmptyArgument    = errors.New("identity: empty argument")
)

// APIError is returned for responses with a status the client has no
// specific handling for.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("identity: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("identity: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Is makes errors.Is(err, ErrUnexpectedStatus) match any APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
