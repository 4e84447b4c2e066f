package db

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a query that must match a document matches
// none.
var ErrNotFound = errors.New("document not found")

// IsNotFound reports whether err, or its cause, means no document matched.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	cause := errors.Cause(err)
	return cause == ErrNotFound || cause == mongo.ErrNoDocuments
}

func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	return mongo.IsDuplicateKeyError(errors.Cause(err))
}
