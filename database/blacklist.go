package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TokenBlacklist reads the revoked tokens written on logout.
type TokenBlacklist struct {
	coll *mongo.Collection
}

func NewTokenBlacklist(db *mongo.Database) *TokenBlacklist {
	return &TokenBlacklist{coll: db.Collection(BlacklistCollection)}
}

func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var entry bson.M
	err := b.coll.FindOne(ctx, bson.M{"token": token}).Decode(&entry)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}
