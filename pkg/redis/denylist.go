package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/browniegate/pkg/denylist"
)

// Denylist stores revoked token identifiers as Redis keys that expire at the
// token's own expiry, so the set never outgrows the live tokens.
type Denylist struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewDenylist creates a Redis-backed denylist.Store. An empty prefix uses the
// default one.
func NewDenylist(client redis.UniversalClient, prefix string) *Denylist {
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Denylist{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

var _ denylist.Store = (*Denylist)(nil)

// Revoke records id until the given horizon. Horizons already in the past
// need no entry.
func (d *Denylist) Revoke(ctx context.Context, id string, until time.Time) error {
	if id == "" {
		return denylist.ErrEmptyID
	}

	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	// Redis expiries have millisecond resolution.
	ttl = max(ttl, time.Millisecond)

	if err := d.client.SetNX(ctx, d.key(id), 1, ttl).Err(); err != nil {
		return errors.Join(denylist.ErrUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether id is on the list.
func (d *Denylist) IsRevoked(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, denylist.ErrEmptyID
	}

	n, err := d.client.Exists(ctx, d.key(id)).Result()
	if err != nil {
		return false, errors.Join(denylist.ErrUnavailable, err)
	}
	return n > 0, nil
}

func (d *Denylist) key(id string) string {
	return d.prefix + ":" + id
}
