// internal/app/features/assignments/types.go
package assignments

// stratifiedRequest is the JSON body of POST /assignments/stratified.
type stratifiedRequest struct {
	ScopeID         string   `json:"scope_id"`
	ParentScopeID   string   `json:"parent_scope_id,omitempty"`
	RoomSize        int      `json:"room_size"`
	QuestionIDs     []string `json:"question_ids,omitempty"`
	RequestedBy     string   `json:"requested_by"`
	RequestedByName string   `json:"requested_by_name,omitempty"`
}

// optimizedRequest is the JSON body of POST /assignments/optimized.
type optimizedRequest struct {
	TopicScopeID    string          `json:"topic_scope_id"`
	ParentScopeID   string          `json:"parent_scope_id,omitempty"`
	MinRoomSize     int             `json:"min_room_size"`
	MaxRoomSize     int             `json:"max_room_size"`
	UseOptimizer    bool            `json:"use_optimizer"`
	Weights         *requestWeights `json:"weights,omitempty"`
	RequestedBy     string          `json:"requested_by"`
	RequestedByName string          `json:"requested_by_name,omitempty"`
}

// requestWeights are the optimizer's objective weights. Omitted weights
// default inside the engine.
type requestWeights struct {
	Satisfaction  float64 `json:"satisfaction"`
	Heterogeneity float64 `json:"heterogeneity"`
}

// oversizedRoomView is one row of GET /assignments/oversized-rooms.
type oversizedRoomView struct {
	RoomID     string `json:"room_id"`
	ScopeID    string `json:"scope_id"`
	RoomNumber int    `json:"room_number"`
	Size       int    `json:"size"`
	Capacity   int    `json:"capacity"`
}

// scopeView is one row of GET /assignments/eligible-scopes.
type scopeView struct {
	ScopeID          string `json:"scope_id"`
	ParticipantCount int    `json:"participant_count"`
}
