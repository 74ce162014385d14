package database

import (
	"context"

	"wholesale/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{coll: db.Collection(ProductCollection)}
}

// LowStock lists the wholesaler's products whose stock is at or below threshold.
func (s *ProductStore) LowStock(ctx context.Context, wholesaler primitive.ObjectID, threshold int) ([]models.LowStockProduct, error) {
	opts := options.Find().SetProjection(lowStockProjection())

	cursor, err := s.coll.Find(ctx, lowStockFilter(wholesaler, threshold), opts)
	if err != nil {
		return nil, err
	}

	products := []models.LowStockProduct{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func lowStockFilter(wholesaler primitive.ObjectID, threshold int) bson.D {
	return bson.D{
		{Key: "wholesaler", Value: wholesaler},
		{Key: "stock", Value: bson.D{{Key: "$lte", Value: threshold}}},
	}
}

func lowStockProjection() bson.D {
	return bson.D{
		{Key: "_id", Value: 0},
		{Key: "name", Value: 1},
		{Key: "stock", Value: 1},
	}
}
