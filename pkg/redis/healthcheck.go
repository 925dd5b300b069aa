package redis

import (
	"context"
	"errors"
)

// Healthcheck pings the server holding the revoked tokens. Use it as a
// readiness probe: while it fails, verification fails closed.
func (d *Denylist) Healthcheck(ctx context.Context) error {
	if err := d.client.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
