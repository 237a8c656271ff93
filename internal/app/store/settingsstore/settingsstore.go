// internal/app/store/settingsstore/settingsstore.go
package settingsstore

import (
	"context"

	"github.com/convohub/convohub/internal/app/system/status"
	"github.com/convohub/convohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the assignment_settings collection: one immutable
// document per assignment run, at most one active per scope.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignment_settings")}
}

// Insert writes a settings version. The caller pre-assigns the ObjectID so
// room and participant documents can reference it inside the same batch.
func (s *Store) Insert(ctx context.Context, settings models.AssignmentSettings) error {
	_, err := s.c.InsertOne(ctx, settings)
	return err
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.AssignmentSettings, error) {
	var settings models.AssignmentSettings
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&settings); err != nil {
		return models.AssignmentSettings{}, err
	}
	return settings, nil
}

// ActiveForScope returns the active settings versions for a scope. A healthy
// scope has zero or one; more than one is repaired by RepairDuplicateActive.
func (s *Store) ActiveForScope(ctx context.Context, scopeID primitive.ObjectID) ([]models.AssignmentSettings, error) {
	cur, err := s.c.Find(ctx, bson.M{"scope_id": scopeID, "status": status.Active})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AssignmentSettings
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ArchiveActiveForScope archives every active version for a scope except
// excludeID (the version being written). Archiving only flips status; rooms
// and participants of the old version stay untouched for audit.
func (s *Store) ArchiveActiveForScope(ctx context.Context, scopeID, excludeID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{
			"scope_id": scopeID,
			"status":   status.Active,
			"_id":      bson.M{"$ne": excludeID},
		},
		bson.M{"$set": bson.M{"status": status.Archived}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SetNotificationSent flags a version after the downstream notifier ran.
func (s *Store) SetNotificationSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"notification_sent": true}})
	return err
}

// RepairDuplicateActive archives all but the most recently created active
// version for any scope holding more than one. This is a data-integrity
// repair for commit races, not part of the assignment algorithm. Returns the
// number of versions archived.
func (s *Store) RepairDuplicateActive(ctx context.Context) (int64, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": status.Active}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": "$scope_id",
			"ids": bson.M{"$push": "$_id"},
		}}},
		bson.D{{Key: "$match", Value: bson.M{"ids.1": bson.M{"$exists": true}}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var stale []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			IDs []primitive.ObjectID `bson:"ids"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		// First id is the newest thanks to the $sort above; the rest lose.
		stale = append(stale, row.IDs[1:]...)
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	res, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": stale}},
		bson.M{"$set": bson.M{"status": status.Archived}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ListByScope returns every version for a scope, newest first, for audit
// screens.
func (s *Store) ListByScope(ctx context.Context, scopeID primitive.ObjectID) ([]models.AssignmentSettings, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"scope_id": scopeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AssignmentSettings
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
