package query

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindOne returns a QueryFunc that decodes the first document matching
// filter. A missing document surfaces as mongo.ErrNoDocuments, which Run
// reports as not-found.
func FindOne[T any](filter any, opts ...*options.FindOneOptions) QueryFunc[T] {
	return func(ctx context.Context, coll *mongo.Collection) (*T, error) {
		var doc T
		if err := coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}
}

// FindAll returns a QueryFunc that decodes every document matching filter.
// An empty match yields an empty slice, which counts as success.
func FindAll[T any](filter any, opts ...*options.FindOptions) QueryFunc[[]T] {
	return func(ctx context.Context, coll *mongo.Collection) (*[]T, error) {
		cur, err := coll.Find(ctx, filter, opts...)
		if err != nil {
			return nil, err
		}
		defer cur.Close(ctx)

		docs := make([]T, 0)
		if err := cur.All(ctx, &docs); err != nil {
			return nil, err
		}
		return &docs, nil
	}
}

// InsertOne returns a QueryFunc that inserts doc and yields the insert
// result.
func InsertOne(doc any, opts ...*options.InsertOneOptions) QueryFunc[mongo.InsertOneResult] {
	return func(ctx context.Context, coll *mongo.Collection) (*mongo.InsertOneResult, error) {
		return coll.InsertOne(ctx, doc, opts...)
	}
}

// UpdateByID returns a QueryFunc that applies update to the document with
// the given _id. No matching document is reported as not-found.
func UpdateByID(id, update any, opts ...*options.UpdateOptions) QueryFunc[mongo.UpdateResult] {
	return func(ctx context.Context, coll *mongo.Collection) (*mongo.UpdateResult, error) {
		res, err := coll.UpdateByID(ctx, id, update, opts...)
		if err != nil || res.MatchedCount == 0 {
			return nil, err
		}
		return res, nil
	}
}

// DeleteOne returns a QueryFunc that removes the first document matching
// filter. Deleting nothing is reported as not-found.
func DeleteOne(filter any, opts ...*options.DeleteOptions) QueryFunc[mongo.DeleteResult] {
	return func(ctx context.Context, coll *mongo.Collection) (*mongo.DeleteResult, error) {
		res, err := coll.DeleteOne(ctx, filter, opts...)
		if err != nil || res.DeletedCount == 0 {
			return nil, err
		}
		return res, nil
	}
}
