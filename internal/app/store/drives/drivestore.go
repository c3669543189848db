// internal/app/store/drives/drivestore.go
package drivestore

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
	return &Store{c: db.Collection("drives")}
}

// TripFields are the trip details a drive owner may edit. Group and
// comments are managed through SetGroup / SetComments only.
type TripFields struct {
	Name        string
	Avatar      string
	LeavingDate time.Time
	LeavingTime string
	Resort      string
	Seats       int
	Description string
}

func (s *Store) Create(ctx context.Context, d models.Drive) (models.Drive, error) {
	d.ID = primitive.NewObjectID()
	d.CreatedAt = time.Now().UTC()
	if d.Group == nil {
		d.Group = []models.GroupEntry{}
	}
	if d.Comments == nil {
		d.Comments = []models.Comment{}
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Drive{}, err
	}
	return d, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Drive, error) {
	var d models.Drive
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Drive{}, err
	}
	return d, nil
}

// UpdateTrip replaces the editable trip fields and returns the updated
// drive. mongo.ErrNoDocuments when the drive does not exist.
func (s *Store) UpdateTrip(ctx context.Context, id primitive.ObjectID, fields TripFields) (models.Drive, error) {
	update := bson.M{
		"$set": bson.M{
			"name":         fields.Name,
			"avatar":       fields.Avatar,
			"leaving_date": fields.LeavingDate,
			"leaving_time": fields.LeavingTime,
			"resort":       fields.Resort,
			"seats":        fields.Seats,
			"description":  fields.Description,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d models.Drive
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&d); err != nil {
		return models.Drive{}, err
	}
	return d, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListActive returns drives leaving on or after from that still have an
// open seat, newest departure first.
func (s *Store) ListActive(ctx context.Context, from time.Time) ([]models.Drive, error) {
	filter := bson.M{
		"leaving_date": bson.M{"$gte": from},
		"seats":        bson.M{"$gt": 0},
	}
	opts := options.Find().SetSort(bson.D{{Key: "leaving_date", Value: -1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	drives := []models.Drive{}
	if err := cur.All(ctx, &drives); err != nil {
		return nil, err
	}
	return drives, nil
}

// ListByMember returns every drive whose group contains userID,
// including drives the user owns.
func (s *Store) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Drive, error) {
	opts := options.Find().SetSort(bson.D{{Key: "leaving_date", Value: -1}})

	cur, err := s.c.Find(ctx, bson.M{"group.user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	drives := []models.Drive{}
	if err := cur.All(ctx, &drives); err != nil {
		return nil, err
	}
	return drives, nil
}

// SetGroup stores a new group roster along with the seat count that
// reflects it.
func (s *Store) SetGroup(ctx context.Context, id primitive.ObjectID, group []models.GroupEntry, seats int) error {
	if group == nil {
		group = []models.GroupEntry{}
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"group": group, "seats": seats},
	})
	return err
}

func (s *Store) SetComments(ctx context.Context, id primitive.ObjectID, comments []models.Comment) error {
	if comments == nil {
		comments = []models.Comment{}
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"comments": comments},
	})
	return err
}
