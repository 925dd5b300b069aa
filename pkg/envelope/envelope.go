package envelope

import "time"

// Cipher seals plaintext into an authenticated envelope and opens it again.
// Implementations are safe for concurrent use.
type Cipher interface {
	// Seal encrypts and authenticates plaintext. The result is URL-safe text
	// and differs on every call, even for identical input.
	Seal(plaintext []byte) ([]byte, error)

	// Open verifies and decrypts an envelope produced by Seal and reports when
	// it was sealed. It returns ErrMalformed or ErrAuthentication on failure.
	Open(envelope []byte) (plaintext []byte, sealedAt time.Time, err error)
}
