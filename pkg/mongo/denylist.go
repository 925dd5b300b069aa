package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/browniegate/pkg/denylist"
)

// Denylist is a denylist.Store on a MongoDB collection. Documents are keyed by
// token identifier and removed by a TTL index once the token has expired.
type Denylist struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ denylist.Store = (*Denylist)(nil)

// NewDenylist ensures the TTL index on coll and returns the store.
func NewDenylist(ctx context.Context, coll *mongo.Collection) (*Denylist, error) {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToCreateIndex, err)
	}

	return &Denylist{coll: coll, now: time.Now}, nil
}

// Revoke records id until the given horizon. Existing entries are left as
// they are.
func (d *Denylist) Revoke(ctx context.Context, id string, until time.Time) error {
	if id == "" {
		return denylist.ErrEmptyID
	}

	_, err := d.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$setOnInsert", Value: bson.D{
			{Key: "expires_at", Value: until.UTC()},
			{Key: "revoked_at", Value: d.now().UTC()},
		}}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(denylist.ErrUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether id has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, denylist.ErrEmptyID
	}

	n, err := d.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Join(denylist.ErrUnavailable, err)
	}
	return n > 0, nil
}
