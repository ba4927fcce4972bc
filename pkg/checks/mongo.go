package checks

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// DocumentCounter is satisfied by *mongo.Collection.
type DocumentCounter interface {
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
}

// MongoUnique passes when no document in the collection has field equal to the value.
func MongoUnique(coll DocumentCounter, field string, opts ...Option) validator.AsyncPredicate {
	o := newOptions(DefaultTakenMessage, opts)
	return func(ctx context.Context, value any) error {
		v, ok := scalar(value)
		if !ok {
			return nil
		}
		n, err := coll.CountDocuments(ctx, bson.D{{Key: field, Value: v}}, options.Count().SetLimit(1))
		if err != nil {
			return o.backendFailed(ctx, "mongo:"+field, err)
		}
		if n > 0 {
			return errors.New(o.message)
		}
		return nil
	}
}
