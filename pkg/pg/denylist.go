package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/browniegate/pkg/denylist"
)

// DB is the subset of *pgxpool.Pool the denylist needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	revokeQuery        = `INSERT INTO revoked_sessions (token_id, expires_at) VALUES ($1, $2) ON CONFLICT (token_id) DO NOTHING`
	isRevokedQuery     = `SELECT EXISTS (SELECT 1 FROM revoked_sessions WHERE token_id = $1)`
	deleteExpiredQuery = `DELETE FROM revoked_sessions WHERE expires_at <= $1`
)

// Denylist is a denylist.Store on the revoked_sessions table created by Migrate.
type Denylist struct {
	db  DB
	now func() time.Time
}

// NewDenylist creates a Postgres-backed denylist.
func NewDenylist(db DB) *Denylist {
	return &Denylist{db: db, now: time.Now}
}

var _ denylist.Store = (*Denylist)(nil)

// Revoke records id. Revoking an already revoked id is a no-op.
func (d *Denylist) Revoke(ctx context.Context, id string, until time.Time) error {
	if id == "" {
		return denylist.ErrEmptyID
	}
	if _, err := d.db.Exec(ctx, revokeQuery, id, until.UTC()); err != nil {
		return errors.Join(denylist.ErrUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether id has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, denylist.ErrEmptyID
	}

	var revoked bool
	if err := d.db.QueryRow(ctx, isRevokedQuery, id).Scan(&revoked); err != nil {
		return false, errors.Join(denylist.ErrUnavailable, err)
	}
	return revoked, nil
}

// DeleteExpired removes entries whose tokens have expired and returns how many
// were removed. Run it periodically; expired tokens are rejected regardless.
func (d *Denylist) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := d.db.Exec(ctx, deleteExpiredQuery, d.now().UTC())
	if err != nil {
		return 0, errors.Join(denylist.ErrUnavailable, err)
	}
	return tag.RowsAffected(), nil
}
