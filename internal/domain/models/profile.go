// internal/domain/models/profile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds a user's rider/driver attributes. Exactly one document
// per user (unique index on user_id). Drives copy these fields by value
// onto group entries at join time; they are not kept live-linked.
type Profile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Grade      string             `bson:"grade,omitempty" json:"grade,omitempty"`
	Type       string             `bson:"type,omitempty" json:"type,omitempty"`
	Experience string             `bson:"experience,omitempty" json:"experience,omitempty"`
	Skills     []string           `bson:"skills,omitempty" json:"skills,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
