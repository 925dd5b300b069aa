// Package denylist defines the durable record of revoked session tokens.
//
// Session tokens are self-contained ciphertext, so revoking one means
// remembering its identifier until the token would have expired anyway. The
// Store interface is the seam the session client depends on; concrete
// backends live next to their drivers (pkg/redis, pkg/pg, pkg/mongo). This
// package ships two implementations that need no external service:
//
//   - MemoryStore keeps entries in a map and drops them after their
//     retention horizon. Suitable for tests and single-process deployments.
//   - Cached wraps any Store and memoises positive lookups in a bounded LRU.
//     Revocation is terminal, so a cached "revoked" answer never goes stale.
//
// # Usage
//
//	store := denylist.NewMemoryStore(time.Minute)
//	defer store.Close()
//
//	_ = store.Revoke(ctx, tokenID, expiresAt)
//	revoked, err := store.IsRevoked(ctx, tokenID)
//
// # Error Handling
//
// Backends wrap driver and network failures with ErrUnavailable so callers can
// tell an unreachable store (retriable) from a programming error such as
// ErrEmptyID.
package denylist
