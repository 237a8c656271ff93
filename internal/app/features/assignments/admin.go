// internal/app/features/assignments/admin.go
package assignments

import (
	"net/http"

	"github.com/convohub/convohub/internal/app/store/queries/assignqueries"
	"go.uber.org/zap"
)

// ServeOversizedRooms handles GET /assignments/oversized-rooms: rooms of
// active versions holding more participants than their configured capacity.
func (h *Handler) ServeOversizedRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := assignqueries.OversizedRooms(r.Context(), h.DB)
	if err != nil {
		h.Log.Error("oversized-rooms query failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}

	out := make([]oversizedRoomView, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, oversizedRoomView{
			RoomID:     room.RoomID.Hex(),
			ScopeID:    room.ScopeID.Hex(),
			RoomNumber: room.RoomNumber,
			Size:       room.Size,
			Capacity:   room.Capacity,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

// ServeEligibleScopes handles GET /assignments/eligible-scopes: scopes with
// at least one participant, largest pool first.
func (h *Handler) ServeEligibleScopes(w http.ResponseWriter, r *http.Request) {
	scopes, err := assignqueries.EligibleScopes(r.Context(), h.DB)
	if err != nil {
		h.Log.Error("eligible-scopes query failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}

	out := make([]scopeView, 0, len(scopes))
	for _, s := range scopes {
		out = append(out, scopeView{
			ScopeID:          s.ScopeID.Hex(),
			ParticipantCount: s.ParticipantCount,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}
