package envelope

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"github.com/fernet/fernet-go"
	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required size of GCM master and project keys.
	KeySize = 32

	// hkdfInfo gives derived keys domain separation from other uses of the
	// same master key.
	hkdfInfo = "browniegate-envelope-v1"
)

// ValidateKeys checks that both GCM keys are KeySize bytes long.
// Both lengths are checked before returning so timing does not reveal which one failed.
func ValidateKeys(masterKey, projectKey []byte) error {
	validMaster := len(masterKey) == KeySize
	validProject := len(projectKey) == KeySize

	if !validMaster {
		return errors.Join(ErrInvalidKey, errors.New("master key must be 32 bytes"))
	}
	if !validProject {
		return errors.Join(ErrInvalidKey, errors.New("project key must be 32 bytes"))
	}
	return nil
}

// deriveKey derives the AES-256 key for a master/project key pair.
// The caller clears the result with clearBytes once the cipher is built.
func deriveKey(masterKey, projectKey []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, masterKey, projectKey, []byte(hkdfInfo))

	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(r, derived); err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}
	return derived, nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GenerateKey returns a random KeySize key for the GCM cipher.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// GenerateFernetKey returns a new URL-safe base64 encoded Fernet key.
func GenerateFernetKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", err
	}
	return k.Encode(), nil
}
