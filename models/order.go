package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// RevenueStatuses are the statuses whose totals count as realized revenue.
// Pending and confirmed orders are in flight and excluded.
func RevenueStatuses() []OrderStatus {
	return []OrderStatus{StatusDelivered, StatusShipped}
}

type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Wholesaler primitive.ObjectID `bson:"wholesaler" json:"wholesaler"`
	Retailer   primitive.ObjectID `bson:"retailer" json:"retailer"`
	Items      []OrderItem        `bson:"items" json:"items"`
	Total      float64            `bson:"total" json:"total"`
	Status     OrderStatus        `bson:"status" json:"status"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

// OrderFilter scopes order queries. A zero ObjectID leaves that owner
// unconstrained, but at least one owner must be set (see Scoped); an empty
// Statuses matches every status.
type OrderFilter struct {
	Wholesaler primitive.ObjectID
	Retailer   primitive.ObjectID
	Statuses   []OrderStatus
}

// Scoped reports whether the filter is restricted to a wholesaler or a retailer.
func (f OrderFilter) Scoped() bool {
	return !f.Wholesaler.IsZero() || !f.Retailer.IsZero()
}

// OrderTotals is the row produced by grouping orders under a single key.
type OrderTotals struct {
	Count int64   `bson:"count"`
	Sum   float64 `bson:"sum"`
}
