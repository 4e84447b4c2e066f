package db

import (
	"context"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	NoProjection = bson.M{}
	NoSort       = []string{}
	NoSkip       = 0
	NoLimit      = 0
)

// ChangeInfo reports the effect of a write.
type ChangeInfo struct {
	Matched int
	Updated int
	Removed int
}

// Insert inserts the specified item into the collection and returns the
// identifier the document was stored under.
func Insert(ctx context.Context, coll *mongo.Collection, item any) (any, error) {
	res, err := coll.InsertOne(ctx, item)
	if err != nil {
		return nil, errors.Wrapf(errors.WithStack(err), "inserting document into '%s'", coll.Name())
	}

	return res.InsertedID, nil
}

// Update updates one matching document in the collection. A query that
// matches nothing is not an error; callers inspect ChangeInfo.Matched.
func Update(ctx context.Context, coll *mongo.Collection, query any, update any) (*ChangeInfo, error) {
	if query == nil {
		grip.EmergencyPanic(message.Fields{
			"message":    "nil query passed to update",
			"collection": coll.Name(),
		})
	}

	res, err := coll.UpdateOne(ctx, query, update)
	if err != nil {
		return nil, errors.Wrapf(err, "updating document in '%s'", coll.Name())
	}

	return &ChangeInfo{Matched: int(res.MatchedCount), Updated: int(res.ModifiedCount)}, nil
}

// RemoveOne removes one item matching the query from the collection.
func RemoveOne(ctx context.Context, coll *mongo.Collection, query any) (*ChangeInfo, error) {
	res, err := coll.DeleteOne(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(errors.WithStack(err), "deleting document from '%s'", coll.Name())
	}

	return &ChangeInfo{Removed: int(res.DeletedCount)}, nil
}

// Count runs a count command with the specified query against the collection.
func Count(ctx context.Context, coll *mongo.Collection, query any) (int, error) {
	res, err := coll.CountDocuments(ctx, query)
	return int(res), errors.WithStack(err)
}

// FindOneQ runs a Q query against the collection, applying the result to
// "out". It returns ErrNotFound if nothing matches.
func FindOneQ(ctx context.Context, coll *mongo.Collection, q Q, out any) error {
	res := coll.FindOne(ctx, q.filter, q.findOneOptions())
	if err := res.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return errors.Wrapf(err, "finding document in '%s'", coll.Name())
	}

	return errors.Wrap(res.Decode(out), "decoding document")
}

// FindAllQ runs a Q query against the collection, applying the results to
// "out", which must be a pointer to a slice.
func FindAllQ(ctx context.Context, coll *mongo.Collection, q Q, out any) error {
	cursor, err := coll.Find(ctx, q.filter, q.findOptions())
	if err != nil {
		return errors.Wrapf(err, "finding documents in '%s'", coll.Name())
	}

	return errors.Wrap(cursor.All(ctx, out), "decoding documents")
}

// Aggregate runs an aggregation pipeline on a collection and unmarshals
// the results to the given "out" interface (usually a pointer
// to an array of structs/bson.M)
func Aggregate(ctx context.Context, coll *mongo.Collection, pipeline any, out any) error {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return errors.Wrapf(err, "running aggregation on '%s'", coll.Name())
	}

	return errors.Wrap(cursor.All(ctx, out), "decoding aggregation results")
}

// =============================================
// ============ Test only functions ============
// =============================================

// ClearCollections clears all documents from all the specified collections,
// returning an error immediately if clearing any one of them fails.
func ClearCollections(ctx context.Context, db *mongo.Database, collections ...string) error {
	for _, collection := range collections {
		if _, err := db.Collection(collection).DeleteMany(ctx, bson.M{}); err != nil {
			return errors.Wrapf(err, "clearing collection '%s'", collection)
		}
	}
	return nil
}
