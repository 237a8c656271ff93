// internal/app/store/participantstore/participantstore.go
package participantstore

import (
	"context"

	"github.com/convohub/convohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the read-only participant source for assignment runs. Participant
// records are owned by the account-management system; the engine never
// writes them.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("participants")}
}

// ListByScope returns the participant pool for a scope in user-id order.
// The scrambler re-shuffles, so the stable order here only serves
// reproducibility of reads.
func (s *Store) ListByScope(ctx context.Context, scopeID primitive.ObjectID) ([]models.Participant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "user_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"scope_id": scopeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Participant
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
