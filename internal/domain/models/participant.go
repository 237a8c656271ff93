// internal/domain/models/participant.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant is one member of the pool an assignment run partitions.
// Immutable for the duration of a run; identity is UserID.
type Participant struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	ScopeID primitive.ObjectID `bson:"scope_id" json:"scope_id"`
	UserID  string             `bson:"user_id" json:"user_id"`
	Name    string             `bson:"name" json:"name"`

	// Demographic answers keyed by question id. Present when the participant
	// has answered the workspace's demographic survey.
	Answers map[string]string `bson:"answers,omitempty" json:"answers,omitempty"`

	// Spectrum is the participant's scalar opinion position, used by the
	// optimized run mode. Nil when the participant never took the spectrum
	// survey.
	Spectrum *float64 `bson:"spectrum,omitempty" json:"spectrum,omitempty"`

	// OptedTopics lists topic scope ids the participant opted into, in the
	// order they opted. Used by the optimized run mode.
	OptedTopics []string `bson:"opted_topics,omitempty" json:"opted_topics,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DemographicQuestion is one authored demographic question. Answer options
// carry the display color the room listing paints tags with.
type DemographicQuestion struct {
	ID      string           `bson:"_id" json:"id"`
	Text    string           `bson:"text" json:"text"`
	Options []QuestionOption `bson:"options,omitempty" json:"options,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// QuestionOption is one selectable answer for a demographic question.
type QuestionOption struct {
	Value string `bson:"value" json:"value"`
	Color string `bson:"color,omitempty" json:"color,omitempty"`
}

// ColorFor returns the display color for an answer value, or "" when the
// answer is free-form or unknown.
func (q DemographicQuestion) ColorFor(answer string) string {
	for _, opt := range q.Options {
		if opt.Value == answer {
			return opt.Color
		}
	}
	return ""
}
