package checks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/schemakit/pkg/checks"
)

type fakeCollection struct {
	docs   []bson.D
	filter any
}

func (c *fakeCollection) CountDocuments(_ context.Context, filter any, _ ...options.Lister[options.CountOptions]) (int64, error) {
	c.filter = filter
	want := filter.(bson.D)[0]
	var n int64
	for _, doc := range c.docs {
		for _, e := range doc {
			if e.Key == want.Key && e.Value == want.Value {
				n++
			}
		}
	}
	return n, nil
}

func TestMongoUnique(t *testing.T) {
	t.Parallel()

	coll := &fakeCollection{docs: []bson.D{{{Key: "slug", Value: "hello-world"}}}}
	check := checks.MongoUnique(coll, "slug", checks.WithMessage("Slug is taken"))

	assert.NoError(t, check(context.Background(), "fresh-post"))
	assert.Equal(t, bson.D{{Key: "slug", Value: "fresh-post"}}, coll.filter)
	assert.EqualError(t, check(context.Background(), "hello-world"), "Slug is taken")
}
