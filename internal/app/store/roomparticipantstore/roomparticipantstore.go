// internal/app/store/roomparticipantstore/roomparticipantstore.go
package roomparticipantstore

import (
	"context"
	"errors"

	"github.com/convohub/convohub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateAssignment means the composite participant id already exists
// for this settings version: the same user was assigned twice in one run.
var ErrDuplicateAssignment = errors.New("participant already assigned in this settings version")

// Store provides access to the room_participants collection: one document per
// participant per settings version, keyed by the composite id.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("room_participants")}
}

// InsertMany writes the placements of one settings version. The composite
// _id makes a double placement a duplicate-key error rather than silent
// data corruption.
func (s *Store) InsertMany(ctx context.Context, parts []models.RoomParticipant) error {
	if len(parts) == 0 {
		return nil
	}
	docs := make([]any, len(parts))
	for i := range parts {
		docs[i] = parts[i]
	}
	_, err := s.c.InsertMany(ctx, docs)
	if err != nil && wafflemongo.IsDup(err) {
		return ErrDuplicateAssignment
	}
	return err
}

// ListByRoom returns a room's placements in user-name order.
func (s *Store) ListByRoom(ctx context.Context, roomID primitive.ObjectID) ([]models.RoomParticipant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "user_name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.RoomParticipant
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetNotified flags one placement after the downstream notifier delivered.
func (s *Store) SetNotified(ctx context.Context, id string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"notified": true}})
	return err
}
