// internal/domain/models/drive.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Drive is the central aggregate: a posted trip together with its
// embedded rider group and comment thread.
//
// NOTE:
//   - Group and Comments are embedded on the drive document and are
//     mutated read-modify-write as whole arrays; they are not
//     independent collections.
//   - Name and Avatar are snapshots of the owning user taken at
//     create/update time.
//   - Invariant: at most one group entry per user id; the owner is
//     seeded as the first entry at creation.
type Drive struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	Avatar      string             `bson:"avatar" json:"avatar"`
	LeavingDate time.Time          `bson:"leaving_date" json:"leaving_date"`
	LeavingTime string             `bson:"leaving_time" json:"leaving_time"`
	Resort      string             `bson:"resort" json:"resort"`
	Seats       int                `bson:"seats" json:"seats"`
	Description string             `bson:"description" json:"description"`
	Group       []GroupEntry       `bson:"group" json:"group"`
	Comments    []Comment          `bson:"comments" json:"comments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// GroupEntry is a membership snapshot built from the joining user's
// User and Profile records. Profile fields are present only when set on
// the profile at join time.
type GroupEntry struct {
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name       string             `bson:"name" json:"name"`
	Phone      string             `bson:"phone" json:"phone"`
	Avatar     string             `bson:"avatar" json:"avatar"`
	Grade      string             `bson:"grade,omitempty" json:"grade,omitempty"`
	Type       string             `bson:"type,omitempty" json:"type,omitempty"`
	Experience string             `bson:"experience,omitempty" json:"experience,omitempty"`
	Skills     []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	JoinedAt   time.Time          `bson:"joined_at" json:"joined_at"`
}

// Comment is one entry of a drive's comment thread. ID is a UUID local
// to the parent drive; comments are addressed by it when removed.
type Comment struct {
	ID        string             `bson:"id" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	Avatar    string             `bson:"avatar" json:"avatar"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
