package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Healthcheck pings the primary the denylist writes to.
func (d *Denylist) Healthcheck(ctx context.Context) error {
	if err := d.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
