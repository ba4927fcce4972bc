// Package mongo connects the MongoDB backend used by checks.MongoUnique.
//
//	db, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer db.Client().Disconnect(context.Background())
//	reg.RegisterAsync("slug_unique", checks.MongoUnique(db.Collection("posts"), "slug"))
package mongo
