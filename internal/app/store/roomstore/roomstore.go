// internal/app/store/roomstore/roomstore.go
package roomstore

import (
	"context"

	"github.com/convohub/convohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the rooms collection. Rooms are written once per
// assignment run and never mutated afterwards.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("rooms")}
}

// InsertMany writes the rooms of one settings version in one call.
func (s *Store) InsertMany(ctx context.Context, rooms []models.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	docs := make([]any, len(rooms))
	for i := range rooms {
		docs[i] = rooms[i]
	}
	_, err := s.c.InsertMany(ctx, docs)
	return err
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Room, error) {
	var room models.Room
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&room); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

// ListBySettings returns the rooms of one settings version in room-number
// order.
func (s *Store) ListBySettings(ctx context.Context, settingsID primitive.ObjectID) ([]models.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "room_number", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"settings_id": settingsID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Room
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
