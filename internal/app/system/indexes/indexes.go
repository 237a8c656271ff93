// internal/app/system/indexes/indexes.go
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

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureSettings(ctx, db); err != nil {
		problems = append(problems, "assignment_settings: "+err.Error())
	}
	if err := ensureRooms(ctx, db); err != nil {
		problems = append(problems, "rooms: "+err.Error())
	}
	if err := ensureRoomParticipants(ctx, db); err != nil {
		problems = append(problems, "room_participants: "+err.Error())
	}
	if err := ensureParticipants(ctx, db); err != nil {
		problems = append(problems, "participants: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensure(ctx context.Context, db *mongo.Database, coll string, idxs []mongo.IndexModel) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, idxs)
	if err != nil {
		zap.L().Error("index creation failed", zap.String("collection", coll), zap.Error(err))
	}
	return err
}

// ensureSettings backs the active-version lookup and the numbering scan.
func ensureSettings(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "assignment_settings", []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "scope_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().
				SetName("scope_status"),
		},
		{
			Keys: bson.D{{Key: "parent_scope_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().
				SetName("parent_status"),
		},
	})
}

func ensureRooms(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "rooms", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "settings_id", Value: 1}, {Key: "room_number", Value: 1}},
			Options: options.Index().SetName("settings_room_number"),
		},
		{
			Keys:    bson.D{{Key: "scope_id", Value: 1}},
			Options: options.Index().SetName("scope"),
		},
	})
}

func ensureRoomParticipants(ctx context.Context, db *mongo.Database) error {
	// The composite _id already guarantees one placement per participant per
	// version; these serve the per-version and per-room reads.
	return ensure(ctx, db, "room_participants", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "settings_id", Value: 1}},
			Options: options.Index().SetName("settings"),
		},
		{
			Keys:    bson.D{{Key: "room_id", Value: 1}},
			Options: options.Index().SetName("room"),
		},
	})
}

func ensureParticipants(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "participants", []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "scope_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("scope_user").
				SetUnique(true),
		},
	})
}
