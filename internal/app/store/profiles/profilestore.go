// internal/app/store/profiles/profilestore.go
package profilestore

import (
	"context"
	"time"

	"github.com/slopepool/slopepool/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profiles")}
}

func (s *Store) GetByUserID(ctx context.Context, userID primitive.ObjectID) (models.Profile, error) {
	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Upsert creates or replaces the profile for p.UserID and returns the
// stored document. The unique user_id index keeps this one-per-user.
func (s *Store) Upsert(ctx context.Context, p models.Profile) (models.Profile, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"grade":      p.Grade,
			"type":       p.Type,
			"experience": p.Experience,
			"skills":     p.Skills,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out models.Profile
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"user_id": p.UserID}, update, opts).Decode(&out); err != nil {
		return models.Profile{}, err
	}
	return out, nil
}
