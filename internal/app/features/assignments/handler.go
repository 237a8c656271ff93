// internal/app/features/assignments/handler.go
package assignments

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/convohub/convohub/internal/app/engine/assign"
	"github.com/convohub/convohub/internal/app/system/requestid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Defaults are the configured engine defaults applied when a request omits
// a sizing field.
type Defaults struct {
	RoomSize        int
	MinRoomSize     int
	MaxRoomSize     int
	SolverTimeLimit time.Duration
}

// Handler is the shared dependency container for the assignments feature.
// The run handlers delegate to the assign service; the admin read handlers
// query the database directly.
type Handler struct {
	DB  *mongo.Database
	Svc *assign.Service
	Cfg Defaults
	Log *zap.Logger
}

// NewHandler constructs an assignments Handler. It is typically called from
// the bootstrap BuildHandler function, where the application's DB and
// logger are already initialized.
func NewHandler(client *mongo.Client, db *mongo.Database, logger *zap.Logger, cfg Defaults) *Handler {
	return &Handler{
		DB:  db,
		Svc: assign.NewService(client, db, logger),
		Cfg: cfg,
		Log: logger,
	}
}

// writeJSON writes a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error("encoding response failed", zap.Error(err))
	}
}

// runResponse is the success envelope of a run endpoint.
type runResponse struct {
	Success bool `json:"success"`
	assign.RunResult
}

// errorResponse is the failure envelope of a run endpoint.
type errorResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// writeRun writes a committed run result. The log line carries the request
// id so the commit can be correlated with the request that produced it.
func (h *Handler) writeRun(w http.ResponseWriter, r *http.Request, res assign.RunResult) {
	h.Log.Info("assignment run committed",
		zap.String("request_id", requestid.FromContext(r.Context())),
		zap.String("settings_id", res.SettingsID.Hex()),
		zap.Int("total_rooms", res.TotalRooms),
		zap.Int("total_participants", res.TotalParticipants))
	h.writeJSON(w, http.StatusCreated, runResponse{Success: true, RunResult: res})
}

// writeRunError maps an assignment-run failure onto an HTTP status and the
// failure envelope. Validation problems are the caller's fault; unknown
// references are 404; everything else is a server-side persistence failure
// whose detail stays in the log.
func (h *Handler) writeRunError(w http.ResponseWriter, r *http.Request, err error) {
	var code int
	kind := assign.KindOf(err)
	msg := err.Error()
	switch kind {
	case assign.KindValidation:
		code = http.StatusBadRequest
	case assign.KindNotFound:
		code = http.StatusNotFound
	default:
		code = http.StatusInternalServerError
		msg = "assignment run failed"
		h.Log.Error("assignment run failed",
			zap.String("request_id", requestid.FromContext(r.Context())),
			zap.Error(err))
	}
	h.writeJSON(w, code, errorResponse{Success: false, Kind: string(kind), Message: msg})
}

// writeBadRequest writes a 400 validation envelope for request-shape
// problems caught before the service runs.
func (h *Handler) writeBadRequest(w http.ResponseWriter, msg string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{
		Success: false,
		Kind:    string(assign.KindValidation),
		Message: msg,
	})
}
