// internal/app/engine/assign/optimized.go
package assign

import (
	"context"
	"fmt"
	"time"

	"github.com/convohub/convohub/internal/app/engine/optimize"
	"github.com/convohub/convohub/internal/app/engine/scramble"
	"github.com/convohub/convohub/internal/app/system/status"
	"github.com/convohub/convohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RunOptimized executes a topic/spectrum run: rooms per topic within the
// size range, optimizer first if requested, always falling back to the
// bucketing heuristic. Callers get one uniform result regardless of path;
// SolverStatus records which one ran.
func (s *Service) RunOptimized(ctx context.Context, req OptimizedRequest) (RunResult, error) {
	if req.TopicScopeID.IsZero() {
		return RunResult{}, validationf("topic_scope_id is required")
	}
	if req.MinRoomSize < 2 {
		return RunResult{}, validationf("minimum room size must be at least 2, got %d", req.MinRoomSize)
	}
	if req.MaxRoomSize < req.MinRoomSize {
		return RunResult{}, validationf("room size range [%d,%d] is invalid", req.MinRoomSize, req.MaxRoomSize)
	}

	pool, err := s.participants.ListByScope(ctx, req.TopicScopeID)
	if err != nil {
		return RunResult{}, persistence("loading participant pool failed", err)
	}
	if len(pool) == 0 {
		return RunResult{}, validationf("participant pool for scope %s is empty", req.TopicScopeID.Hex())
	}
	if len(pool) < req.MinRoomSize {
		return RunResult{}, validationf("participant pool (%d) is smaller than one room (%d)", len(pool), req.MinRoomSize)
	}

	in := make([]optimize.Participant, 0, len(pool))
	for _, p := range pool {
		op := optimize.Participant{ID: p.UserID, Name: p.Name, OptedTopics: p.OptedTopics}
		if p.Spectrum != nil {
			op.Spectrum = *p.Spectrum
		}
		in = append(in, op)
	}

	cfg := optimize.Config{
		MinRoomSize:         req.MinRoomSize,
		MaxRoomSize:         req.MaxRoomSize,
		SatisfactionWeight:  req.Weights.Satisfaction,
		HeterogeneityWeight: req.Weights.Heterogeneity,
	}

	// The time limit bounds the optimizer attempt only. The fallback never
	// blocks and the commit below must not inherit an expired deadline.
	solveCtx := ctx
	if req.UseOptimizer && req.SolverTimeLimit > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, req.SolverTimeLimit)
		defer cancel()
	}
	res := optimize.Run(solveCtx, in, cfg, req.UseOptimizer, s.newRand(), s.log)

	parent := parentOf(req.TopicScopeID, req.ParentScopeID)
	offset, err := s.numberingOffset(ctx, parent)
	if err != nil {
		return RunResult{}, err
	}

	now := time.Now().UTC()
	settings := models.AssignmentSettings{
		ID:                 primitive.NewObjectID(),
		ScopeID:            req.TopicScopeID,
		ParentScopeID:      parent,
		Mode:               models.ModeOptimized,
		MinRoomSize:        req.MinRoomSize,
		MaxRoomSize:        req.MaxRoomSize,
		Status:             status.Active,
		TotalRooms:         len(res.Rooms),
		TotalParticipants:  res.TotalParticipants,
		SolverStatus:       res.SolverStatus,
		SatisfactionScore:  res.SatisfactionScore,
		HeterogeneityScore: res.HeterogeneityScore,
		CreatedAt:          now,
		CreatedBy:          req.RequestedBy,
		CreatedByName:      req.RequestedByName,
	}

	sizes := make([]int, 0, len(res.Rooms))
	rooms := make([]models.Room, 0, len(res.Rooms))
	placements := make([]models.RoomParticipant, 0, res.Placed)
	summaries := make([]RoomSummary, 0, len(res.Rooms))
	for i, room := range res.Rooms {
		number := offset + i + 1
		doc := models.Room{
			ID:         primitive.NewObjectID(),
			SettingsID: settings.ID,
			ScopeID:    req.TopicScopeID,
			RoomNumber: number,
			TopicID:    room.TopicID,
			RoomName:   fmt.Sprintf("Room %d", number),
			CreatedAt:  now,
		}
		for _, p := range room.Participants {
			doc.ParticipantIDs = append(doc.ParticipantIDs, p.ID)
			placements = append(placements, models.RoomParticipant{
				ID:         models.RoomParticipantID(settings.ID, p.ID),
				SettingsID: settings.ID,
				ScopeID:    req.TopicScopeID,
				RoomID:     doc.ID,
				RoomNumber: number,
				UserID:     p.ID,
				UserName:   p.Name,
				AssignedAt: now,
			})
		}
		sizes = append(sizes, len(doc.ParticipantIDs))
		rooms = append(rooms, doc)
		summaries = append(summaries, RoomSummary{
			RoomID:           doc.ID,
			RoomNumber:       number,
			ParticipantCount: len(doc.ParticipantIDs),
		})
	}
	settings.BalanceScore = scramble.BalanceScore(sizes, len(sizes))

	if err := s.commit(ctx, settings, rooms, placements); err != nil {
		return RunResult{}, err
	}

	return RunResult{
		SettingsID:         settings.ID,
		TotalRooms:         len(res.Rooms),
		TotalParticipants:  res.TotalParticipants,
		BalanceScore:       settings.BalanceScore,
		SatisfactionScore:  res.SatisfactionScore,
		HeterogeneityScore: res.HeterogeneityScore,
		SolverStatus:       res.SolverStatus,
		Rooms:              summaries,
	}, nil
}
