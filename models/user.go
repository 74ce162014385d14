package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleWholesaler Role = "wholesaler"
	RoleRetailer   Role = "retailer"
	RoleAdmin      Role = "admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      Role               `bson:"role" json:"role"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Principal is the caller resolved from a bearer token.
type Principal struct {
	ID   primitive.ObjectID
	Role Role
}
