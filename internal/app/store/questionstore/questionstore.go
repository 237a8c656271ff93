// internal/app/store/questionstore/questionstore.go
package questionstore

import (
	"context"

	"github.com/convohub/convohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the read-only demographic-question lookup. Question authoring
// lives in a separate admin surface; the engine only resolves ids to text
// and answer-option metadata.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("demographic_questions")}
}

// GetMany resolves question ids to their metadata. Ids with no document are
// returned in missing so the caller can reject the run before computing.
func (s *Store) GetMany(ctx context.Context, ids []string) (found map[string]models.DemographicQuestion, missing []string, err error) {
	found = make(map[string]models.DemographicQuestion, len(ids))
	if len(ids) == 0 {
		return found, nil, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var q models.DemographicQuestion
		if err := cur.Decode(&q); err != nil {
			return nil, nil, err
		}
		found[q.ID] = q
	}
	if err := cur.Err(); err != nil {
		return nil, nil, err
	}

	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}
