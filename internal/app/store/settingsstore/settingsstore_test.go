package settingsstore

import (
	"testing"
	"time"

	"github.com/convohub/convohub/internal/app/system/status"
	"github.com/convohub/convohub/internal/domain/models"
	"github.com/convohub/convohub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newSettings(scopeID primitive.ObjectID, st string, createdAt time.Time) models.AssignmentSettings {
	return models.AssignmentSettings{
		ID:        primitive.NewObjectID(),
		ScopeID:   scopeID,
		Mode:      models.ModeStratified,
		RoomSize:  4,
		Status:    st,
		CreatedAt: createdAt,
		CreatedBy: "admin",
	}
}

func TestArchiveActiveForScope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	scopeID := primitive.NewObjectID()
	now := time.Now().UTC()

	old := newSettings(scopeID, status.Active, now.Add(-time.Hour))
	if err := store.Insert(ctx, old); err != nil {
		t.Fatalf("inserting old version: %v", err)
	}
	// A version in an unrelated scope must not be touched.
	other := newSettings(primitive.NewObjectID(), status.Active, now)
	if err := store.Insert(ctx, other); err != nil {
		t.Fatalf("inserting other-scope version: %v", err)
	}

	replacement := newSettings(scopeID, status.Active, now)
	archived, err := store.ArchiveActiveForScope(ctx, scopeID, replacement.ID)
	if err != nil {
		t.Fatalf("ArchiveActiveForScope: %v", err)
	}
	if archived != 1 {
		t.Fatalf("expected 1 archived version, got %d", archived)
	}
	if err := store.Insert(ctx, replacement); err != nil {
		t.Fatalf("inserting replacement: %v", err)
	}

	got, err := store.GetByID(ctx, old.ID)
	if err != nil {
		t.Fatalf("loading old version: %v", err)
	}
	if got.Status != status.Archived {
		t.Fatalf("expected old version archived, got %q", got.Status)
	}

	untouched, err := store.GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("loading other-scope version: %v", err)
	}
	if untouched.Status != status.Active {
		t.Fatalf("other scope's version was archived")
	}

	active, err := store.ActiveForScope(ctx, scopeID)
	if err != nil {
		t.Fatalf("ActiveForScope: %v", err)
	}
	if len(active) != 1 || active[0].ID != replacement.ID {
		t.Fatalf("expected only the replacement active, got %d versions", len(active))
	}
}

func TestRepairDuplicateActiveKeepsNewest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	scopeID := primitive.NewObjectID()
	now := time.Now().UTC()

	oldest := newSettings(scopeID, status.Active, now.Add(-2*time.Hour))
	middle := newSettings(scopeID, status.Active, now.Add(-time.Hour))
	newest := newSettings(scopeID, status.Active, now)
	healthy := newSettings(primitive.NewObjectID(), status.Active, now)
	for _, s := range []models.AssignmentSettings{oldest, middle, newest, healthy} {
		if err := store.Insert(ctx, s); err != nil {
			t.Fatalf("inserting fixture: %v", err)
		}
	}

	repaired, err := store.RepairDuplicateActive(ctx)
	if err != nil {
		t.Fatalf("RepairDuplicateActive: %v", err)
	}
	if repaired != 2 {
		t.Fatalf("expected 2 versions archived, got %d", repaired)
	}

	active, err := store.ActiveForScope(ctx, scopeID)
	if err != nil {
		t.Fatalf("ActiveForScope: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active version after repair, got %d", len(active))
	}
	if active[0].ID != newest.ID {
		t.Fatalf("repair kept %s, expected the newest %s", active[0].ID.Hex(), newest.ID.Hex())
	}

	// Healthy scopes are left alone.
	h, err := store.GetByID(ctx, healthy.ID)
	if err != nil {
		t.Fatalf("loading healthy version: %v", err)
	}
	if h.Status != status.Active {
		t.Fatalf("healthy scope's version was archived")
	}

	// Idempotent: a second pass finds nothing to do.
	again, err := store.RepairDuplicateActive(ctx)
	if err != nil {
		t.Fatalf("second RepairDuplicateActive: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected no repairs on second pass, got %d", again)
	}
}

func TestListByScopeNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	scopeID := primitive.NewObjectID()
	now := time.Now().UTC()
	first := newSettings(scopeID, status.Archived, now.Add(-time.Hour))
	second := newSettings(scopeID, status.Active, now)
	for _, s := range []models.AssignmentSettings{first, second} {
		if err := store.Insert(ctx, s); err != nil {
			t.Fatalf("inserting fixture: %v", err)
		}
	}

	versions, err := store.ListByScope(ctx, scopeID)
	if err != nil {
		t.Fatalf("ListByScope: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(versions))
	}
	if versions[0].ID != second.ID {
		t.Fatalf("expected newest version first")
	}
}

func TestSetNotificationSent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := newSettings(primitive.NewObjectID(), status.Active, time.Now().UTC())
	if err := store.Insert(ctx, s); err != nil {
		t.Fatalf("inserting fixture: %v", err)
	}
	if err := store.SetNotificationSent(ctx, s.ID); err != nil {
		t.Fatalf("SetNotificationSent: %v", err)
	}
	got, err := store.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if !got.NotificationSent {
		t.Fatal("notification_sent flag not set")
	}
}
