package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/slopepool/slopepool/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user. The stored hash is not a real bcrypt
// hash; use register/login fixtures for credential flows.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		EmailCI:      text.Fold(email),
		PasswordHash: "x",
		Phone:        "555-0100",
		Avatar:       "https://www.gravatar.com/avatar/test?s=200&r=pg&d=mm",
		CreatedAt:    time.Now().UTC(),
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateProfile creates a rider profile for userID.
func (f *Fixtures) CreateProfile(ctx context.Context, userID primitive.ObjectID) models.Profile {
	f.t.Helper()

	now := time.Now().UTC()
	profile := models.Profile{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Grade:      "intermediate",
		Type:       "snowboard",
		Experience: "5 seasons",
		Skills:     []string{"park", "powder"},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("profiles").InsertOne(ctx, profile)
	if err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateDrive creates a drive owned by owner, seeded with the owner as
// group entry #0 (the invariant the create operation maintains).
func (f *Fixtures) CreateDrive(ctx context.Context, owner models.User, leaving time.Time, seats int) models.Drive {
	f.t.Helper()

	now := time.Now().UTC()
	drive := models.Drive{
		ID:          primitive.NewObjectID(),
		UserID:      owner.ID,
		Name:        owner.Name,
		Avatar:      owner.Avatar,
		LeavingDate: leaving,
		LeavingTime: "07:00",
		Resort:      "Brighton",
		Seats:       seats,
		Description: "Test drive up the canyon",
		Group: []models.GroupEntry{{
			UserID:   owner.ID,
			Name:     owner.Name,
			Phone:    owner.Phone,
			Avatar:   owner.Avatar,
			JoinedAt: now,
		}},
		Comments:  []models.Comment{},
		CreatedAt: now,
	}

	_, err := f.db.Collection("drives").InsertOne(ctx, drive)
	if err != nil {
		f.t.Fatalf("failed to create test drive: %v", err)
	}
	return drive
}

// AddGroupEntry appends a snapshot of user to the front of drive's
// group and decrements seats, mirroring a join. Returns the updated
// drive read back from the database.
func (f *Fixtures) AddGroupEntry(ctx context.Context, drive models.Drive, user models.User) models.Drive {
	f.t.Helper()

	entry := models.GroupEntry{
		UserID:   user.ID,
		Name:     user.Name,
		Phone:    user.Phone,
		Avatar:   user.Avatar,
		JoinedAt: time.Now().UTC(),
	}
	group := append([]models.GroupEntry{entry}, drive.Group...)

	_, err := f.db.Collection("drives").UpdateByID(ctx, drive.ID, bson.M{
		"$set": bson.M{"group": group, "seats": drive.Seats - 1},
	})
	if err != nil {
		f.t.Fatalf("failed to add group entry: %v", err)
	}
	return f.GetDrive(ctx, drive.ID)
}

// AddComment appends a comment by user to the front of drive's thread.
func (f *Fixtures) AddComment(ctx context.Context, drive models.Drive, user models.User, body string) models.Comment {
	f.t.Helper()

	c := models.Comment{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Text:      body,
		CreatedAt: time.Now().UTC(),
	}
	comments := append([]models.Comment{c}, drive.Comments...)

	_, err := f.db.Collection("drives").UpdateByID(ctx, drive.ID, bson.M{
		"$set": bson.M{"comments": comments},
	})
	if err != nil {
		f.t.Fatalf("failed to add comment: %v", err)
	}
	return c
}

// GetDrive reads a drive back from the database.
func (f *Fixtures) GetDrive(ctx context.Context, id primitive.ObjectID) models.Drive {
	f.t.Helper()

	var d models.Drive
	if err := f.db.Collection("drives").FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		f.t.Fatalf("failed to read drive: %v", err)
	}
	return d
}
