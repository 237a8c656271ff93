// Package assignqueries provides cross-collection read queries for the
// assignment engine and its admin screens.
package assignqueries

import (
	"context"

	"github.com/convohub/convohub/internal/app/system/status"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MaxActiveRoomNumber returns the highest room number among the rooms of all
// currently active settings versions under a parent scope, or 0 when none
// exist. The numbering manager reads this snapshot before a run so sibling
// topics continue one numbering sequence instead of each restarting at 1.
//
// The read is a best-effort snapshot: two sibling runs racing each other can
// observe the same maximum and overlap numbers. The overlap is bounded and
// accepted; the commit itself stays atomic.
func MaxActiveRoomNumber(ctx context.Context, db *mongo.Database, parentScopeID primitive.ObjectID) (int, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"parent_scope_id": parentScopeID,
			"status":          status.Active,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "rooms",
			"localField":   "_id",
			"foreignField": "settings_id",
			"as":           "rooms",
		}}},
		bson.D{{Key: "$unwind", Value: "$rooms"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": nil,
			"max": bson.M{"$max": "$rooms.room_number"},
		}}},
	}

	cur, err := db.Collection("assignment_settings").Aggregate(ctx, pipe)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Max int `bson:"max"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		return row.Max, nil
	}
	return 0, cur.Err()
}

// OversizedRoom is one room holding more participants than its settings
// version allows. Overflow can happen when incomplete-profile participants
// are placed into an already-full pool rather than dropped.
type OversizedRoom struct {
	RoomID     primitive.ObjectID `bson:"room_id"`
	ScopeID    primitive.ObjectID `bson:"scope_id"`
	RoomNumber int                `bson:"room_number"`
	Size       int                `bson:"size"`
	Capacity   int                `bson:"capacity"`
}

// OversizedRooms lists rooms of active settings versions that exceed their
// configured capacity (room_size for stratified runs, max_room_size for
// optimized runs).
func OversizedRooms(ctx context.Context, db *mongo.Database) ([]OversizedRoom, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": status.Active}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "rooms",
			"localField":   "_id",
			"foreignField": "settings_id",
			"as":           "rooms",
		}}},
		bson.D{{Key: "$unwind", Value: "$rooms"}},
		bson.D{{Key: "$project", Value: bson.M{
			"room_id":     "$rooms._id",
			"scope_id":    "$rooms.scope_id",
			"room_number": "$rooms.room_number",
			"size":        bson.M{"$size": "$rooms.participant_ids"},
			"capacity": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$room_size", 0}},
				"$room_size",
				"$max_room_size",
			}},
		}}},
		bson.D{{Key: "$match", Value: bson.M{
			"$expr": bson.M{"$gt": bson.A{"$size", "$capacity"}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "room_number", Value: 1}}}},
	}

	cur, err := db.Collection("assignment_settings").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []OversizedRoom
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ScopeSummary is one scope with at least one participant eligible for
// assignment.
type ScopeSummary struct {
	ScopeID          primitive.ObjectID `bson:"_id"`
	ParticipantCount int                `bson:"participant_count"`
}

// EligibleScopes lists scopes that have at least one participant, largest
// pool first. Administrative screens use it to pick scopes worth running.
func EligibleScopes(ctx context.Context, db *mongo.Database) ([]ScopeSummary, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":               "$scope_id",
			"participant_count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "participant_count", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}

	cur, err := db.Collection("participants").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []ScopeSummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
