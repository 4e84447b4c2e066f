package todo

import (
	"context"

	"github.com/evergreen-ci/todoapi/db"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Todo is the single record type kept by the service.
type Todo struct {
	Id       primitive.ObjectID `bson:"_id"`
	Title    string             `bson:"title"`
	Complete bool               `bson:"complete"`
}

// Patch names the fields an update sets. Nil fields are left unchanged.
type Patch struct {
	Title    *string
	Complete *bool
}

// IsEmpty reports whether the patch would not change any field.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Complete == nil
}

// ParseId converts the hex form of an identifier into an ObjectID.
func ParseId(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(err, "invalid todo id '%s'", id)
	}

	return oid, nil
}

// Insert writes the todo to the collection, assigning it a new identifier
// when it does not already have one.
func (t *Todo) Insert(ctx context.Context, database *mongo.Database) error {
	if t.Id.IsZero() {
		t.Id = primitive.NewObjectID()
	}

	_, err := db.Insert(ctx, database.Collection(Collection), t)
	return errors.Wrapf(err, "inserting todo '%s'", t.Id.Hex())
}
