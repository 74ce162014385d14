package database

import (
	"context"
	"errors"

	"wholesale/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUnscopedQuery is returned for order queries that name no owner.
var ErrUnscopedQuery = errors.New("order query has no wholesaler or retailer scope")

type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{coll: db.Collection(OrderCollection)}
}

func (s *OrderStore) Count(ctx context.Context, f models.OrderFilter) (int64, error) {
	if !f.Scoped() {
		return 0, ErrUnscopedQuery
	}
	return s.coll.CountDocuments(ctx, orderFilterDoc(f))
}

// Totals counts and sums the matching orders in one grouped aggregation so
// both numbers come from the same pass. No matching orders yields zeros.
func (s *OrderStore) Totals(ctx context.Context, f models.OrderFilter) (models.OrderTotals, error) {
	if !f.Scoped() {
		return models.OrderTotals{}, ErrUnscopedQuery
	}
	cursor, err := s.coll.Aggregate(ctx, totalsPipeline(f))
	if err != nil {
		return models.OrderTotals{}, err
	}

	var rows []models.OrderTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return models.OrderTotals{}, err
	}
	if len(rows) == 0 {
		return models.OrderTotals{}, nil
	}
	return rows[0], nil
}

func (s *OrderStore) CountDistinctRetailers(ctx context.Context, f models.OrderFilter) (int64, error) {
	if !f.Scoped() {
		return 0, ErrUnscopedQuery
	}
	values, err := s.coll.Distinct(ctx, "retailer", orderFilterDoc(f))
	if err != nil {
		return 0, err
	}
	return int64(len(values)), nil
}

func (s *OrderStore) Recent(ctx context.Context, f models.OrderFilter, limit int64) ([]models.Order, error) {
	if !f.Scoped() {
		return nil, ErrUnscopedQuery
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.coll.Find(ctx, orderFilterDoc(f), opts)
	if err != nil {
		return nil, err
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func orderFilterDoc(f models.OrderFilter) bson.D {
	filter := bson.D{}
	if !f.Wholesaler.IsZero() {
		filter = append(filter, bson.E{Key: "wholesaler", Value: f.Wholesaler})
	}
	if !f.Retailer.IsZero() {
		filter = append(filter, bson.E{Key: "retailer", Value: f.Retailer})
	}
	switch len(f.Statuses) {
	case 0:
	case 1:
		filter = append(filter, bson.E{Key: "status", Value: string(f.Statuses[0])})
	default:
		statuses := make(bson.A, 0, len(f.Statuses))
		for _, st := range f.Statuses {
			statuses = append(statuses, string(st))
		}
		filter = append(filter, bson.E{Key: "status", Value: bson.D{{Key: "$in", Value: statuses}}})
	}
	return filter
}

func totalsPipeline(f models.OrderFilter) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: orderFilterDoc(f)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "sum", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
	}
}
