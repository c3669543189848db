// Package indexes reconciles the indexes this app relies on. EnsureAll
// is called at startup; every ensure* function is idempotent and errors
// are aggregated so startup can fail fast with the full picture.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureProfiles(ctx, db); err != nil {
		problems = append(problems, "profiles: "+err.Error())
	}
	if err := ensureDrives(ctx, db); err != nil {
		problems = append(problems, "drives: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	zap.L().Info("indexes ensured",
		zap.Strings("collections", []string{"users", "profiles", "drives"}))
	return nil
}

// ensureUsers enforces unique folded emails; registration relies on the
// duplicate-key error from this index.
func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email_ci"),
		},
	})
	return err
}

// ensureProfiles enforces one profile per user.
func ensureProfiles(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("profiles").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_id"),
		},
	})
	return err
}

// ensureDrives covers the active-drive listing (leaving_date desc with
// a seats filter) and the dashboard lookup by group membership.
func ensureDrives(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("drives").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "leaving_date", Value: -1}, {Key: "seats", Value: 1}},
			Options: options.Index().SetName("active_drives"),
		},
		{
			Keys:    bson.D{{Key: "group.user_id", Value: 1}},
			Options: options.Index().SetName("group_member"),
		},
	})
	return err
}
