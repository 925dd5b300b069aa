package session

import "errors"

var (
	// ErrInvalidToken indicates the token is empty, structurally malformed or
	// carries an unusable payload.
	ErrInvalidToken = errors.New("session.invalid_token")

	// ErrAuthentication indicates the token failed integrity verification:
	// it was tampered with or sealed under a different key.
	ErrAuthentication = errors.New("session.authentication_failed")

	// ErrExpiredToken indicates the token is authentic but past its expiry.
	ErrExpiredToken = errors.New("session.expired")

	// ErrRevokedToken indicates the token is authentic but has been revoked.
	ErrRevokedToken = errors.New("session.revoked")

	// ErrRevocationStoreUnavailable indicates the denylist could not be
	// consulted or updated. The operation may be retried.
	ErrRevocationStoreUnavailable = errors.New("session.revocation_store_unavailable")

	// ErrNoDenylist indicates Revoke was called on a client without a denylist
	ErrNoDenylist = errors.New("session.no_denylist")

	// ErrNoCipher indicates the client was created without a cipher
	ErrNoCipher = errors.New("session.no_cipher")

	// ErrEmptyUserID indicates Issue was called without a user identifier
	ErrEmptyUserID = errors.New("session.empty_user_id")

	// ErrInvalidTTL indicates a non-positive time to live
	ErrInvalidTTL = errors.New("session.invalid_ttl")

	// ErrInvalidAttribute indicates an attribute key or value that cannot be
	// carried in a token
	ErrInvalidAttribute = errors.New("session.invalid_attribute")

	// ErrTokenGeneration indicates the token identifier could not be generated
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrEncryption indicates the payload could not be sealed
	ErrEncryption = errors.New("session.encryption_failed")

	// ErrTokenNotFound indicates the request carries no session token
	ErrTokenNotFound = errors.New("session.not_found")
)

// IsRetriable reports whether err is a transient failure worth retrying.
// Verification failures are final; only denylist outages are not.
func IsRetriable(err error) bool {
	return errors.Is(err, ErrRevocationStoreUnavailable)
}
