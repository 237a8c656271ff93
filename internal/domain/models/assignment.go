// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DemographicTag is one answered question attached to a room participant,
// denormalized for display (question text + answer + option color).
type DemographicTag struct {
	QuestionID   string `bson:"question_id" json:"question_id"`
	QuestionText string `bson:"question_text" json:"question_text"`
	Answer       string `bson:"answer" json:"answer"`
	Color        string `bson:"color,omitempty" json:"color,omitempty"`
}

// Assignment run modes.
const (
	ModeStratified = "stratified"
	ModeOptimized  = "optimized"
)

// AssignmentSettings is one immutable version of a room-assignment run for a
// scope. Exactly one document per scope may be "active" at a time; a new run
// archives the previous active version in the same batch that writes its own
// records. Archived versions are never deleted.
//
// For stratified runs RoomSize is set and Min/MaxRoomSize are zero; for
// optimized runs the min/max pair is set and RoomSize is zero.
type AssignmentSettings struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	ScopeID       primitive.ObjectID `bson:"scope_id" json:"scope_id"`
	ParentScopeID primitive.ObjectID `bson:"parent_scope_id" json:"parent_scope_id"`

	Mode        string `bson:"mode" json:"mode"` // "stratified" | "optimized"
	RoomSize    int    `bson:"room_size,omitempty" json:"room_size,omitempty"`
	MinRoomSize int    `bson:"min_room_size,omitempty" json:"min_room_size,omitempty"`
	MaxRoomSize int    `bson:"max_room_size,omitempty" json:"max_room_size,omitempty"`

	// QuestionIDs is the ordered stratification question set for stratified
	// runs; empty for optimized runs.
	QuestionIDs []string `bson:"question_ids,omitempty" json:"question_ids,omitempty"`

	Status            string  `bson:"status" json:"status"` // status.Active | status.Archived
	TotalRooms        int     `bson:"total_rooms" json:"total_rooms"`
	TotalParticipants int     `bson:"total_participants" json:"total_participants"`
	BalanceScore      float64 `bson:"balance_score" json:"balance_score"`

	// Optimized-run diagnostics. SolverStatus is one of the optimize package's
	// status tags; empty for stratified runs.
	SolverStatus       string  `bson:"solver_status,omitempty" json:"solver_status,omitempty"`
	SatisfactionScore  float64 `bson:"satisfaction_score,omitempty" json:"satisfaction_score,omitempty"`
	HeterogeneityScore float64 `bson:"heterogeneity_score,omitempty" json:"heterogeneity_score,omitempty"`

	NotificationSent bool `bson:"notification_sent" json:"notification_sent"`

	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	CreatedBy     string    `bson:"created_by" json:"created_by"`
	CreatedByName string    `bson:"created_by_name,omitempty" json:"created_by_name,omitempty"`
}

// Room is one discussion room produced by an assignment run. RoomNumber is
// unique across the rooms of all active settings versions sharing one
// parent scope, so sibling topics continue a single numbering sequence.
type Room struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	SettingsID primitive.ObjectID `bson:"settings_id" json:"settings_id"`
	ScopeID    primitive.ObjectID `bson:"scope_id" json:"scope_id"`
	RoomNumber int                `bson:"room_number" json:"room_number"`

	// TopicID is set for optimized runs: the topic this room discusses.
	TopicID string `bson:"topic_id,omitempty" json:"topic_id,omitempty"`

	RoomName       string   `bson:"room_name,omitempty" json:"room_name,omitempty"`
	ParticipantIDs []string `bson:"participant_ids" json:"participant_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// RoomParticipant is one participant's placement in one settings version.
// The composite _id (settingsID + "--" + userID) guarantees at most one
// placement per participant per version. Never mutated after creation except
// for the Notified flag, which a downstream notifier flips.
type RoomParticipant struct {
	ID         string             `bson:"_id" json:"id"`
	SettingsID primitive.ObjectID `bson:"settings_id" json:"settings_id"`
	ScopeID    primitive.ObjectID `bson:"scope_id" json:"scope_id"`
	RoomID     primitive.ObjectID `bson:"room_id" json:"room_id"`
	RoomNumber int                `bson:"room_number" json:"room_number"`

	UserID   string           `bson:"user_id" json:"user_id"`
	UserName string           `bson:"user_name" json:"user_name"`
	Tags     []DemographicTag `bson:"tags,omitempty" json:"tags,omitempty"`

	AssignedAt time.Time `bson:"assigned_at" json:"assigned_at"`
	Notified   bool      `bson:"notified" json:"notified"`
}

// RoomParticipantID builds the composite room_participants _id.
func RoomParticipantID(settingsID primitive.ObjectID, userID string) string {
	return settingsID.Hex() + "--" + userID
}
