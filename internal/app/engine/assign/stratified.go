// internal/app/engine/assign/stratified.go
package assign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/convohub/convohub/internal/app/engine/demokey"
	"github.com/convohub/convohub/internal/app/engine/scramble"
	"github.com/convohub/convohub/internal/app/system/status"
	"github.com/convohub/convohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RunStratified executes a stratified run: the pool is grouped by
// demographic key and spread round-robin across ceil(N/roomSize) rooms.
// Validation happens before any computation; nothing is written unless the
// whole run commits.
func (s *Service) RunStratified(ctx context.Context, req StratifiedRequest) (RunResult, error) {
	if req.ScopeID.IsZero() {
		return RunResult{}, validationf("scope_id is required")
	}
	if strings.TrimSpace(req.RequestedBy) == "" {
		return RunResult{}, validationf("requested_by is required")
	}
	if req.RoomSize < 2 {
		return RunResult{}, validationf("room size must be at least 2, got %d", req.RoomSize)
	}

	pool, err := s.participants.ListByScope(ctx, req.ScopeID)
	if err != nil {
		return RunResult{}, persistence("loading participant pool failed", err)
	}
	if len(pool) == 0 {
		return RunResult{}, validationf("participant pool for scope %s is empty", req.ScopeID.Hex())
	}
	if len(pool) < req.RoomSize {
		return RunResult{}, validationf("participant pool (%d) is smaller than one room (%d)", len(pool), req.RoomSize)
	}

	questions, missing, err := s.questions.GetMany(ctx, req.QuestionIDs)
	if err != nil {
		return RunResult{}, persistence("loading demographic questions failed", err)
	}
	if len(missing) > 0 {
		return RunResult{}, notFoundf("demographic question %s does not exist", missing[0])
	}

	in := make([]scramble.Participant, len(pool))
	for i, p := range pool {
		in[i] = scramble.Participant{ID: p.UserID, Name: p.Name, Answers: p.Answers}
	}
	res := scramble.Scramble(in, req.QuestionIDs, req.RoomSize, s.newRand())

	parent := parentOf(req.ScopeID, req.ParentScopeID)
	offset, err := s.numberingOffset(ctx, parent)
	if err != nil {
		return RunResult{}, err
	}

	now := time.Now().UTC()
	settings := models.AssignmentSettings{
		ID:                primitive.NewObjectID(),
		ScopeID:           req.ScopeID,
		ParentScopeID:     parent,
		Mode:              models.ModeStratified,
		RoomSize:          req.RoomSize,
		QuestionIDs:       req.QuestionIDs,
		Status:            status.Active,
		TotalRooms:        res.TotalRooms,
		TotalParticipants: res.TotalParticipants,
		BalanceScore:      res.BalanceScore,
		CreatedAt:         now,
		CreatedBy:         req.RequestedBy,
		CreatedByName:     req.RequestedByName,
	}

	rooms := make([]models.Room, 0, len(res.Rooms))
	placements := make([]models.RoomParticipant, 0, res.TotalParticipants)
	summaries := make([]RoomSummary, 0, len(res.Rooms))
	for _, room := range res.Rooms {
		number := offset + room.Number
		doc := models.Room{
			ID:         primitive.NewObjectID(),
			SettingsID: settings.ID,
			ScopeID:    req.ScopeID,
			RoomNumber: number,
			RoomName:   fmt.Sprintf("Room %d", number),
			CreatedAt:  now,
		}
		for _, p := range room.Participants {
			doc.ParticipantIDs = append(doc.ParticipantIDs, p.ID)
			placements = append(placements, models.RoomParticipant{
				ID:         models.RoomParticipantID(settings.ID, p.ID),
				SettingsID: settings.ID,
				ScopeID:    req.ScopeID,
				RoomID:     doc.ID,
				RoomNumber: number,
				UserID:     p.ID,
				UserName:   p.Name,
				Tags:       demokey.TagsFor(p.Answers, req.QuestionIDs, questions),
				AssignedAt: now,
			})
		}
		rooms = append(rooms, doc)
		summaries = append(summaries, RoomSummary{
			RoomID:           doc.ID,
			RoomNumber:       number,
			ParticipantCount: len(doc.ParticipantIDs),
		})
	}

	if err := s.commit(ctx, settings, rooms, placements); err != nil {
		return RunResult{}, err
	}

	return RunResult{
		SettingsID:        settings.ID,
		TotalRooms:        res.TotalRooms,
		TotalParticipants: res.TotalParticipants,
		BalanceScore:      res.BalanceScore,
		Rooms:             summaries,
	}, nil
}
