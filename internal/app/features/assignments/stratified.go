// internal/app/features/assignments/stratified.go
package assignments

import (
	"net/http"

	"github.com/convohub/convohub/internal/app/engine/assign"
	"github.com/convohub/convohub/internal/app/system/sanitize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleStratified handles POST /assignments/stratified: it runs a
// stratified assignment for a scope and returns the committed result.
func (h *Handler) HandleStratified(w http.ResponseWriter, r *http.Request) {
	var body stratifiedRequest
	if !h.decode(w, r, &body) {
		return
	}

	scopeID, ok := h.parseObjectID(w, "scope_id", body.ScopeID)
	if !ok {
		return
	}
	parentID, ok := h.parseOptionalObjectID(w, "parent_scope_id", body.ParentScopeID)
	if !ok {
		return
	}

	roomSize := body.RoomSize
	if roomSize == 0 {
		roomSize = h.Cfg.RoomSize
	}

	res, err := h.Svc.RunStratified(r.Context(), assign.StratifiedRequest{
		ScopeID:         scopeID,
		ParentScopeID:   parentID,
		RoomSize:        roomSize,
		QuestionIDs:     body.QuestionIDs,
		RequestedBy:     body.RequestedBy,
		RequestedByName: sanitize.Text(body.RequestedByName),
	})
	if err != nil {
		h.writeRunError(w, r, err)
		return
	}
	h.writeRun(w, r, res)
}

// decode reads a JSON request body, answering 400 on malformed input.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(r, v); err != nil {
		h.writeBadRequest(w, "invalid request body")
		return false
	}
	return true
}

// parseObjectID parses a required hex ObjectID field, answering 400 when it
// is missing or malformed.
func (h *Handler) parseObjectID(w http.ResponseWriter, field, value string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		h.writeBadRequest(w, field+" must be a valid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseOptionalObjectID parses an ObjectID field that may be absent.
func (h *Handler) parseOptionalObjectID(w http.ResponseWriter, field, value string) (primitive.ObjectID, bool) {
	if value == "" {
		return primitive.NilObjectID, true
	}
	return h.parseObjectID(w, field, value)
}
