package envelope

import "errors"

var (
	// Key errors
	ErrNoKey         = errors.New("no encryption key configured")
	ErrInvalidKey    = errors.New("invalid encryption key")
	ErrUnknownCipher = errors.New("unknown cipher")

	// Seal/Open errors
	ErrEncryptionFailed = errors.New("encryption failed")
	ErrMalformed        = errors.New("malformed envelope")
	ErrAuthentication   = errors.New("envelope authentication failed")
)
