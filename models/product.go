package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Wholesaler       primitive.ObjectID `bson:"wholesaler" json:"wholesaler"`
	Name             string             `bson:"name" json:"name"`
	Category         string             `bson:"category,omitempty" json:"category,omitempty"`
	SKU              string             `bson:"sku,omitempty" json:"sku,omitempty"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Price            float64            `bson:"price" json:"price"`
	Stock            int                `bson:"stock" json:"stock"`
	MinOrderQuantity int                `bson:"minOrderQuantity,omitempty" json:"minOrderQuantity,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type LowStockProduct struct {
	Name  string `bson:"name" json:"name"`
	Stock int    `bson:"stock" json:"stock"`
}
