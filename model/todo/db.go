package todo

import (
	"context"

	"github.com/evergreen-ci/todoapi/db"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "todos"

var (
	IdKey       = bsonutil.MustHaveTag(Todo{}, "Id")
	TitleKey    = bsonutil.MustHaveTag(Todo{}, "Title")
	CompleteKey = bsonutil.MustHaveTag(Todo{}, "Complete")

	incompleteKey = bsonutil.MustHaveTag(incompleteCount{}, "Incomplete")
)

type incompleteCount struct {
	Incomplete int `bson:"incomplete"`
}

// ById returns a query that matches the todo with the given id.
func ById(id primitive.ObjectID) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// All returns a query that matches every todo in creation order.
func All() db.Q {
	return db.Query(bson.M{}).Sort([]string{IdKey})
}

// FindAll returns every todo. The result is empty, not nil, when the
// collection has no documents.
func FindAll(ctx context.Context, database *mongo.Database) ([]Todo, error) {
	todos := []Todo{}
	if err := db.FindAllQ(ctx, database.Collection(Collection), All(), &todos); err != nil {
		return nil, errors.Wrap(err, "finding todos")
	}

	return todos, nil
}

// FindOneId returns the todo with the given id, or nil if there is none.
func FindOneId(ctx context.Context, database *mongo.Database, id primitive.ObjectID) (*Todo, error) {
	t := &Todo{}
	err := db.FindOneQ(ctx, database.Collection(Collection), ById(id), t)
	if db.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "finding todo '%s'", id.Hex())
	}

	return t, nil
}

// UpdateOne sets the fields present in the patch on the todo with the
// given id.
func UpdateOne(ctx context.Context, database *mongo.Database, id primitive.ObjectID, patch Patch) (*db.ChangeInfo, error) {
	if patch.IsEmpty() {
		return nil, errors.New("update must set at least one field")
	}

	set := bson.M{}
	if patch.Title != nil {
		set[TitleKey] = *patch.Title
	}
	if patch.Complete != nil {
		set[CompleteKey] = *patch.Complete
	}

	info, err := db.Update(ctx, database.Collection(Collection), ById(id).Filter(), bson.M{"$set": set})
	return info, errors.Wrapf(err, "updating todo '%s'", id.Hex())
}

// Remove deletes the todo with the given id, returning how many
// documents were removed.
func Remove(ctx context.Context, database *mongo.Database, id primitive.ObjectID) (int, error) {
	info, err := db.RemoveOne(ctx, database.Collection(Collection), ById(id).Filter())
	if err != nil {
		return 0, errors.Wrapf(err, "removing todo '%s'", id.Hex())
	}

	return info.Removed, nil
}

// CountIncomplete returns the number of todos not marked complete.
func CountIncomplete(ctx context.Context, database *mongo.Database) (int, error) {
	pipeline := []bson.M{
		{"$match": bson.M{CompleteKey: false}},
		{"$count": incompleteKey},
	}

	out := []incompleteCount{}
	if err := db.Aggregate(ctx, database.Collection(Collection), pipeline, &out); err != nil {
		return 0, errors.Wrap(err, "counting incomplete todos")
	}
	if len(out) == 0 {
		return 0, nil
	}

	return out[0].Incomplete, nil
}
