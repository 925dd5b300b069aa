package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
	"time"
)

const (
	gcmVersion   byte = 0x91
	gcmHeaderLen      = 1 + 8 // version + timestamp
)

// GCM implements Cipher with AES-256-GCM over HKDF-derived keys.
//
// Envelope layout before base64url encoding:
//
//	version(1) | unix seconds(8, big endian) | nonce(12) | ciphertext | tag(16)
//
// The version and timestamp are authenticated as additional data.
type GCM struct {
	aeads []cipher.AEAD
	now   func() time.Time
}

// NewGCM creates a GCM cipher bound to projectKey. Master keys are listed
// newest first; the first one seals and all of them open.
func NewGCM(projectKey []byte, masterKeys ...[]byte) (*GCM, error) {
	if len(masterKeys) == 0 {
		return nil, ErrNoKey
	}

	aeads := make([]cipher.AEAD, 0, len(masterKeys))
	for _, mk := range masterKeys {
		if err := ValidateKeys(mk, projectKey); err != nil {
			return nil, err
		}

		key, err := deriveKey(mk, projectKey)
		if err != nil {
			return nil, err
		}

		block, err := aes.NewCipher(key)
		clearBytes(key)
		if err != nil {
			return nil, errors.Join(ErrInvalidKey, err)
		}

		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, errors.Join(ErrInvalidKey, err)
		}
		aeads = append(aeads, aead)
	}

	return &GCM{aeads: aeads, now: time.Now}, nil
}

// Seal encrypts plaintext with the newest key.
func (g *GCM) Seal(plaintext []byte) ([]byte, error) {
	aead := g.aeads[0]

	buf := make([]byte, gcmHeaderLen+aead.NonceSize(), gcmHeaderLen+aead.NonceSize()+len(plaintext)+aead.Overhead())
	buf[0] = gcmVersion
	binary.BigEndian.PutUint64(buf[1:gcmHeaderLen], uint64(g.now().Unix()))

	nonce := buf[gcmHeaderLen:]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	aad := append([]byte(nil), buf[:gcmHeaderLen]...)
	sealed := aead.Seal(buf, nonce, plaintext, aad)

	out := make([]byte, base64.RawURLEncoding.EncodedLen(len(sealed)))
	base64.RawURLEncoding.Encode(out, sealed)
	return out, nil
}

// Open verifies the envelope against every configured key.
func (g *GCM) Open(envelope []byte) ([]byte, time.Time, error) {
	raw := make([]byte, base64.RawURLEncoding.DecodedLen(len(envelope)))
	n, err := base64.RawURLEncoding.Decode(raw, envelope)
	if err != nil {
		return nil, time.Time{}, errors.Join(ErrMalformed, err)
	}
	raw = raw[:n]

	nonceSize, overhead := g.aeads[0].NonceSize(), g.aeads[0].Overhead()
	if len(raw) < gcmHeaderLen+nonceSize+overhead || raw[0] != gcmVersion {
		return nil, time.Time{}, ErrMalformed
	}

	header := raw[:gcmHeaderLen]
	nonce := raw[gcmHeaderLen : gcmHeaderLen+nonceSize]
	ciphertext := raw[gcmHeaderLen+nonceSize:]

	for _, aead := range g.aeads {
		plaintext, err := aead.Open(nil, nonce, ciphertext, header)
		if err == nil {
			return plaintext, time.Unix(int64(binary.BigEndian.Uint64(header[1:])), 0), nil
		}
	}

	return nil, time.Time{}, ErrAuthentication
}
