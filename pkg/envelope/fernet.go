package envelope

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
)

const (
	fernetVersion byte = 0x80
	// version + timestamp + IV
	fernetHeaderLen = 1 + 8 + 16
	// header + one AES block + HMAC-SHA256
	fernetMinLen = fernetHeaderLen + 16 + 32
)

// Fernet implements Cipher with the Fernet token format.
type Fernet struct {
	keys []*fernet.Key
}

// NewFernet creates a Fernet cipher. Keys are URL-safe base64 encoded 32-byte
// Fernet keys, newest first. Empty entries are ignored.
func NewFernet(keys ...string) (*Fernet, error) {
	keys = slices.DeleteFunc(slices.Clone(keys), func(k string) bool {
		return strings.TrimSpace(k) == ""
	})
	if len(keys) == 0 {
		return nil, ErrNoKey
	}

	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}

	parsed, err := fernet.DecodeKeys(keys...)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}

	return &Fernet{keys: parsed}, nil
}

// Seal encrypts plaintext with the newest key.
func (f *Fernet) Seal(plaintext []byte) ([]byte, error) {
	tok, err := fernet.EncryptAndSign(plaintext, f.keys[0])
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return tok, nil
}

// Open verifies the envelope against every configured key.
// Timestamp freshness is not checked here.
func (f *Fernet) Open(envelope []byte) ([]byte, time.Time, error) {
	raw, err := decodeFernet(envelope)
	if err != nil {
		return nil, time.Time{}, err
	}

	// A negative TTL disables the library's own freshness check.
	msg := fernet.VerifyAndDecrypt(envelope, -1, f.keys)
	if msg == nil {
		return nil, time.Time{}, ErrAuthentication
	}

	return msg, time.Unix(int64(binary.BigEndian.Uint64(raw[1:9])), 0), nil
}

// decodeFernet checks the envelope layout without touching key material.
func decodeFernet(envelope []byte) ([]byte, error) {
	raw := make([]byte, base64.URLEncoding.DecodedLen(len(envelope)))
	n, err := base64.URLEncoding.Decode(raw, envelope)
	if err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	raw = raw[:n]

	if len(raw) < fernetMinLen || raw[0] != fernetVersion {
		return nil, ErrMalformed
	}
	if (len(raw)-fernetHeaderLen-32)%16 != 0 {
		return nil, ErrMalformed
	}

	return raw, nil
}
