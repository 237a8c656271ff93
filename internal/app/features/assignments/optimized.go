// internal/app/features/assignments/optimized.go
package assignments

import (
	"encoding/json"
	"net/http"

	"github.com/convohub/convohub/internal/app/engine/assign"
	"github.com/convohub/convohub/internal/app/system/sanitize"
)

// decodeJSON reads one JSON document from the request body, rejecting
// trailing garbage.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// HandleOptimized handles POST /assignments/optimized: it runs a
// topic/spectrum assignment for a topic scope and returns the committed
// result, including which solver path produced it.
func (h *Handler) HandleOptimized(w http.ResponseWriter, r *http.Request) {
	var body optimizedRequest
	if !h.decode(w, r, &body) {
		return
	}

	scopeID, ok := h.parseObjectID(w, "topic_scope_id", body.TopicScopeID)
	if !ok {
		return
	}
	parentID, ok := h.parseOptionalObjectID(w, "parent_scope_id", body.ParentScopeID)
	if !ok {
		return
	}

	var weights assign.Weights
	if body.Weights != nil {
		weights = assign.Weights{
			Satisfaction:  body.Weights.Satisfaction,
			Heterogeneity: body.Weights.Heterogeneity,
		}
	}

	minSize, maxSize := body.MinRoomSize, body.MaxRoomSize
	if minSize == 0 && maxSize == 0 {
		minSize, maxSize = h.Cfg.MinRoomSize, h.Cfg.MaxRoomSize
	}

	res, err := h.Svc.RunOptimized(r.Context(), assign.OptimizedRequest{
		TopicScopeID:    scopeID,
		ParentScopeID:   parentID,
		MinRoomSize:     minSize,
		MaxRoomSize:     maxSize,
		SolverTimeLimit: h.Cfg.SolverTimeLimit,
		UseOptimizer:    body.UseOptimizer,
		Weights:         weights,
		RequestedBy:     body.RequestedBy,
		RequestedByName: sanitize.Text(body.RequestedByName),
	})
	if err != nil {
		h.writeRunError(w, r, err)
		return
	}
	h.writeRun(w, r, res)
}
