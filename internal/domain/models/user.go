// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account record.
//
// NOTE:
//   - EmailCI is the folded (lowercase, diacritics-stripped) email used
//     for the unique index and login lookups.
//   - PasswordHash is a bcrypt hash and is never serialized to JSON.
//   - Drives reference users by id and snapshot name/phone/avatar onto
//     their embedded group entries; the user record stays independently
//     owned.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"`
	PasswordHash string             `bson:"password" json:"-"`
	Phone        string             `bson:"phone" json:"phone"`
	Avatar       string             `bson:"avatar" json:"avatar"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
