package pg

import (
	"context"
	"errors"
)

const tableExistsQuery = `SELECT to_regclass('revoked_sessions') IS NOT NULL`

// Healthcheck checks that the database answers and that the revoked_sessions
// table exists, i.e. Migrate has run.
func (d *Denylist) Healthcheck(ctx context.Context) error {
	var exists bool
	if err := d.db.QueryRow(ctx, tableExistsQuery).Scan(&exists); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	if !exists {
		return errors.Join(ErrHealthcheckFailed, ErrMigrationsNotApplied)
	}
	return nil
}
