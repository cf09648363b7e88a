package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOTPStore persists password-reset codes. One active code per email;
// issuing a new code replaces the old one.
type MongoOTPStore struct {
	coll *mongo.Collection
}

func NewOTPStore(db *mongo.Database) *MongoOTPStore {
	return &MongoOTPStore{coll: db.Collection(CollOTPs)}
}

func (s *MongoOTPStore) Issue(ctx context.Context, email, code string, expiresAt time.Time) error {
	now := time.Now()
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set":         bson.M{"otp": code, "expiresAt": expiresAt, "verified": false},
			"$setOnInsert": bson.M{"email": email, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoOTPStore) Find(ctx context.Context, email string) (*OTP, error) {
	return findOne[OTP](ctx, s.coll, bson.M{"email": email})
}

func (s *MongoOTPStore) MarkVerified(ctx context.Context, email string) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"verified": true}})
	return err
}

func (s *MongoOTPStore) Delete(ctx context.Context, email string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"email": email})
	return err
}
