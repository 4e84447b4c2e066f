package db

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Q holds all information necessary to execute a query.
type Q struct {
	filter     any
	projection any
	sort       []string
	skip       int
	limit      int
	maxTime    time.Duration
}

// Query creates a db.Q for the given filter.
func Query(filter any) Q {
	if filter == nil {
		filter = bson.M{}
	}
	return Q{filter: filter}
}

// Filter returns the query's filter document.
func (q Q) Filter() any { return q.filter }

// Project adds a projection to the query.
func (q Q) Project(projection any) Q {
	q.projection = projection
	return q
}

// Sort sets the sort order of the query. A field prefixed with "-" sorts
// descending.
func (q Q) Sort(sort []string) Q {
	q.sort = sort
	return q
}

func (q Q) Skip(skip int) Q {
	q.skip = skip
	return q
}

func (q Q) Limit(limit int) Q {
	q.limit = limit
	return q
}

// MaxTime bounds how long the server may spend on the query.
func (q Q) MaxTime(d time.Duration) Q {
	q.maxTime = d
	return q
}

func (q Q) sortDoc() bson.D {
	if len(q.sort) == 0 {
		return nil
	}

	sort := bson.D{}
	for _, field := range q.sort {
		if strings.HasPrefix(field, "-") {
			sort = append(sort, bson.E{Key: field[1:], Value: -1})
		} else {
			sort = append(sort, bson.E{Key: field, Value: 1})
		}
	}

	return sort
}

func (q Q) findOptions() *options.FindOptions {
	opts := options.Find()
	if q.projection != nil {
		opts.SetProjection(q.projection)
	}
	if sort := q.sortDoc(); sort != nil {
		opts.SetSort(sort)
	}
	if q.skip > 0 {
		opts.SetSkip(int64(q.skip))
	}
	if q.limit > 0 {
		opts.SetLimit(int64(q.limit))
	}
	if q.maxTime > 0 {
		opts.SetMaxTime(q.maxTime)
	}

	return opts
}

func (q Q) findOneOptions() *options.FindOneOptions {
	opts := options.FindOne()
	if q.projection != nil {
		opts.SetProjection(q.projection)
	}
	if sort := q.sortDoc(); sort != nil {
		opts.SetSort(sort)
	}
	if q.skip > 0 {
		opts.SetSkip(int64(q.skip))
	}
	if q.maxTime > 0 {
		opts.SetMaxTime(q.maxTime)
	}

	return opts
}
