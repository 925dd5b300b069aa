package denylist

import (
	"context"
	"time"
)

// Store records revoked token identifiers.
type Store interface {
	// Revoke marks id as revoked. Revoking an already revoked id is a no-op.
	// The entry only needs to be kept until the until horizon; after that the
	// token is rejected as expired regardless.
	Revoke(ctx context.Context, id string, until time.Time) error

	// IsRevoked reports whether id has been revoked.
	IsRevoked(ctx context.Context, id string) (bool, error)
}
