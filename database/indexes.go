package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		OrderCollection: {
			{Keys: bson.D{{Key: "wholesaler", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "wholesaler", Value: 1}, {Key: "retailer", Value: 1}}},
			{Keys: bson.D{{Key: "retailer", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		ProductCollection: {
			{Keys: bson.D{{Key: "wholesaler", Value: 1}, {Key: "stock", Value: 1}}},
		},
		BlacklistCollection: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
}

// EnsureIndexes creates the indexes the dashboard queries rely on.
// Creating an index that already exists is a no-op on the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, idx := range indexModels() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
