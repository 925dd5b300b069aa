package browniegate

import "errors"

var (
	// ErrInvalidPayload indicates a login payload that cannot be decoded,
	// decrypted or parsed.
	ErrInvalidPayload = errors.New("browniegate: invalid payload")

	// ErrPayloadOutOfDate indicates a login payload whose timestamp is too far
	// from the current time.
	ErrPayloadOutOfDate = errors.New("browniegate: code is out of date")

	// ErrInvalidTimezone indicates an unknown Config.Timezone.
	ErrInvalidTimezone = errors.New("browniegate: invalid timezone")
)
