package session_test

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/browniegate/pkg/envelope"
)

func newCipher(t *testing.T) *envelope.Fernet {
	t.Helper()
	key, err := envelope.GenerateFernetKey()
	require.NoError(t, err)
	cipher, err := envelope.NewFernet(key)
	require.NoError(t, err)
	return cipher
}

// testClock starts at the real current time so envelope timestamps, which
// always use the wall clock, never appear to be from the future.
type testClock struct {
	offset atomic.Int64
}

func (c *testClock) Now() time.Time {
	return time.Now().Add(time.Duration(c.offset.Load()))
}

func (c *testClock) Advance(d time.Duration) {
	c.offset.Add(int64(d))
}

// corruptLastByte flips the last byte of the decoded envelope and re-encodes it.
func corruptLastByte(t *testing.T, token string) string {
	t.Helper()
	raw, err := base64.URLEncoding.DecodeString(token)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01
	return base64.URLEncoding.EncodeToString(raw)
}

var errStoreDown = errors.New("connection refused")

// failingStore is a denylist that is always unreachable.
type failingStore struct{}

func (failingStore) Revoke(context.Context, string, time.Time) error { return errStoreDown }
func (failingStore) IsRevoked(context.Context, string) (bool, error) { return false, errStoreDown }

// horizonStore records the horizon of the last revocation.
type horizonStore struct {
	mu    sync.Mutex
	until time.Time
}

func (s *horizonStore) Revoke(_ context.Context, _ string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until = until
	return nil
}

func (s *horizonStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func (s *horizonStore) lastUntil() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.until
}

type recordingRevoker struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (r *recordingRevoker) RevokeSession(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	return r.err
}

func (r *recordingRevoker) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}
