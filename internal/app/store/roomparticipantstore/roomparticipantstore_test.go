package roomparticipantstore

import (
	"errors"
	"testing"
	"time"

	"github.com/convohub/convohub/internal/domain/models"
	"github.com/convohub/convohub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func placement(settingsID, roomID primitive.ObjectID, number int, userID string) models.RoomParticipant {
	return models.RoomParticipant{
		ID:         models.RoomParticipantID(settingsID, userID),
		SettingsID: settingsID,
		ScopeID:    primitive.NewObjectID(),
		RoomID:     roomID,
		RoomNumber: number,
		UserID:     userID,
		UserName:   "User " + userID,
		AssignedAt: time.Now().UTC(),
	}
}

func TestInsertManyRejectsDoublePlacement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	settingsID := primitive.NewObjectID()
	roomID := primitive.NewObjectID()

	batch := []models.RoomParticipant{
		placement(settingsID, roomID, 1, "u1"),
		placement(settingsID, roomID, 1, "u2"),
	}
	if err := store.InsertMany(ctx, batch); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	// Same user in the same settings version collides on the composite id.
	err := store.InsertMany(ctx, []models.RoomParticipant{
		placement(settingsID, primitive.NewObjectID(), 2, "u1"),
	})
	if !errors.Is(err, ErrDuplicateAssignment) {
		t.Fatalf("expected ErrDuplicateAssignment, got %v", err)
	}

	// The same user in a different settings version is fine.
	if err := store.InsertMany(ctx, []models.RoomParticipant{
		placement(primitive.NewObjectID(), roomID, 1, "u1"),
	}); err != nil {
		t.Fatalf("insert into other version: %v", err)
	}
}

func TestListByRoomAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	settingsID := primitive.NewObjectID()
	roomA := primitive.NewObjectID()
	roomB := primitive.NewObjectID()

	batch := []models.RoomParticipant{
		placement(settingsID, roomA, 1, "zeta"),
		placement(settingsID, roomA, 1, "alpha"),
		placement(settingsID, roomB, 2, "mid"),
	}
	if err := store.InsertMany(ctx, batch); err != nil {
		t.Fatalf("InsertMany: %v", err)
	}

	parts, err := store.ListByRoom(ctx, roomA)
	if err != nil {
		t.Fatalf("ListByRoom: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 placements in room A, got %d", len(parts))
	}
	if parts[0].UserID != "alpha" {
		t.Fatalf("expected user-name order, got %s first", parts[0].UserID)
	}

	n, err := db.Collection("room_participants").CountDocuments(ctx, bson.M{"settings_id": settingsID})
	if err != nil {
		t.Fatalf("counting placements: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 placements in version, got %d", n)
	}
}

func TestSetNotified(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := placement(primitive.NewObjectID(), primitive.NewObjectID(), 1, "u1")
	if err := store.InsertMany(ctx, []models.RoomParticipant{p}); err != nil {
		t.Fatalf("InsertMany: %v", err)
	}
	if err := store.SetNotified(ctx, p.ID); err != nil {
		t.Fatalf("SetNotified: %v", err)
	}

	parts, err := store.ListByRoom(ctx, p.RoomID)
	if err != nil {
		t.Fatalf("ListByRoom: %v", err)
	}
	if len(parts) != 1 || !parts[0].Notified {
		t.Fatal("notified flag not set")
	}
}
