package envelope

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Cipher names accepted by Config.Cipher.
const (
	CipherFernet = "fernet"
	CipherGCM    = "gcm"
)

// Config holds envelope cipher configuration.
type Config struct {
	// Cipher selects the envelope format: "fernet" or "gcm".
	Cipher string `env:"BROWNIEGATE_CIPHER" envDefault:"fernet" yaml:"cipher"`

	// Keys is a comma-separated list of keys, newest first. Fernet keys are
	// URL-safe base64; GCM master keys are base64 encoded 32-byte values.
	Keys string `env:"BROWNIEGATE_ENCRYPTION_KEYS" yaml:"encryption_keys"`

	// ProjectKey is the base64 encoded 32-byte project key (gcm only).
	ProjectKey string `env:"BROWNIEGATE_PROJECT_KEY" yaml:"project_key"`
}

// DefaultConfig returns the default envelope configuration (fernet, no keys).
func DefaultConfig() Config {
	return Config{Cipher: CipherFernet}
}

// parseKeys splits the keys string into trimmed, non-empty entries.
func (c Config) parseKeys() []string {
	if c.Keys == "" {
		return nil
	}

	parts := strings.Split(c.Keys, ",")
	keys := make([]string, 0, len(parts))
	for _, k := range parts {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// NewFromConfig creates the cipher selected by cfg.
func NewFromConfig(cfg Config) (Cipher, error) {
	keys := cfg.parseKeys()
	if len(keys) == 0 {
		return nil, ErrNoKey
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Cipher)) {
	case "", CipherFernet:
		return NewFernet(keys...)
	case CipherGCM:
		projectKey, err := decodeKey(cfg.ProjectKey)
		if err != nil {
			return nil, fmt.Errorf("project key: %w", err)
		}

		masterKeys := make([][]byte, 0, len(keys))
		for i, k := range keys {
			mk, err := decodeKey(k)
			if err != nil {
				return nil, fmt.Errorf("key %d: %w", i, err)
			}
			masterKeys = append(masterKeys, mk)
		}
		return NewGCM(projectKey, masterKeys...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCipher, cfg.Cipher)
	}
}

// decodeKey accepts standard or URL-safe base64, padded or not.
func decodeKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrNoKey
	}

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	return nil, errors.Join(ErrInvalidKey, errors.New("key is not valid base64"))
}
