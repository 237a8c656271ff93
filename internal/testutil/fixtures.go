package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/convohub/convohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateQuestion creates a demographic question with one answer option per
// (value, color) pair.
func (f *Fixtures) CreateQuestion(ctx context.Context, id, text string, options ...models.QuestionOption) models.DemographicQuestion {
	f.t.Helper()

	now := time.Now().UTC()
	q := models.DemographicQuestion{
		ID:        id,
		Text:      text,
		Options:   options,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("demographic_questions").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test question: %v", err)
	}
	return q
}

// CreateParticipant creates one participant with demographic answers.
func (f *Fixtures) CreateParticipant(ctx context.Context, scopeID primitive.ObjectID, userID, name string, answers map[string]string) models.Participant {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Participant{
		ID:        primitive.NewObjectID(),
		ScopeID:   scopeID,
		UserID:    userID,
		Name:      name,
		Answers:   answers,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("participants").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test participant: %v", err)
	}
	return p
}

// CreateTopicParticipant creates one participant with a spectrum position
// and opted topics, for optimized runs.
func (f *Fixtures) CreateTopicParticipant(ctx context.Context, scopeID primitive.ObjectID, userID, name string, spectrum float64, topics ...string) models.Participant {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Participant{
		ID:          primitive.NewObjectID(),
		ScopeID:     scopeID,
		UserID:      userID,
		Name:        name,
		Spectrum:    &spectrum,
		OptedTopics: topics,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("participants").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test participant: %v", err)
	}
	return p
}

// CreatePool creates n participants in a scope, cycling answers through the
// given answer sets. Answer sets may be nil for incomplete profiles.
func (f *Fixtures) CreatePool(ctx context.Context, scopeID primitive.ObjectID, n int, answerSets ...map[string]string) []models.Participant {
	f.t.Helper()

	out := make([]models.Participant, 0, n)
	for i := 0; i < n; i++ {
		var answers map[string]string
		if len(answerSets) > 0 {
			answers = answerSets[i%len(answerSets)]
		}
		out = append(out, f.CreateParticipant(ctx, scopeID,
			fmt.Sprintf("user-%03d", i),
			fmt.Sprintf("User %d", i),
			answers))
	}
	return out
}
