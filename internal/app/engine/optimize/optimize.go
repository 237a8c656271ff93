// Package optimize builds topic rooms for participants carrying a scalar
// spectrum position, jointly maximizing topic satisfaction and in-room
// spectrum heterogeneity under min/max room sizes.
//
// Two strategies implement the Solver interface: OptimalSolver runs an
// embedded local-search optimization that can genuinely fail (infeasible
// bounds, deadline), and GreedyFallbackSolver is a deterministic bucketing
// heuristic that always produces a valid partition. Run selects between them
// and never lets a solver failure escape to the caller.
package optimize

import (
	"context"
	"math"
	"math/rand"

	"go.uber.org/zap"
)

// Solver status tags reported to callers. The result shape is identical no
// matter which path produced it.
const (
	StatusOptimal        = "OPTIMAL"
	StatusFallback       = "FALLBACK"
	StatusSimpleScramble = "SIMPLE_SCRAMBLE"
)

// Participant is one member of the optimized pool.
type Participant struct {
	ID       string
	Name     string
	Spectrum float64
	// OptedTopics lists topic ids the participant opted into, first choice
	// first. Participants with no opted topics are not placed.
	OptedTopics []string
}

// Config bounds and weights one optimized run.
type Config struct {
	MinRoomSize int
	MaxRoomSize int
	// Weights combine the two objective terms. Zero values fall back to an
	// even split.
	SatisfactionWeight  float64
	HeterogeneityWeight float64
}

// Room is one produced topic room.
type Room struct {
	TopicID      string
	Participants []Participant
}

// Result is the uniform outcome of an optimized run.
type Result struct {
	Rooms              []Room
	SolverStatus       string
	SatisfactionScore  float64
	HeterogeneityScore float64
	TotalParticipants  int
	Placed             int
}

// Solver produces a room partition or fails with a recoverable error.
type Solver interface {
	Solve(ctx context.Context, participants []Participant, cfg Config, rng *rand.Rand) ([]Room, error)
}

// normalized returns the weights with defaults applied.
func (c Config) normalized() (ws, wh float64) {
	ws, wh = c.SatisfactionWeight, c.HeterogeneityWeight
	if ws <= 0 && wh <= 0 {
		return 0.5, 0.5
	}
	if ws < 0 {
		ws = 0
	}
	if wh < 0 {
		wh = 0
	}
	return ws, wh
}

// Run executes the selection policy: when useOptimizer is set, attempt the
// optimal solver and transparently substitute the fallback on any failure;
// otherwise run the bucketing heuristic directly. The returned SolverStatus
// records which path produced the rooms.
func Run(ctx context.Context, participants []Participant, cfg Config, useOptimizer bool, rng *rand.Rand, log *zap.Logger) Result {
	fallback := &GreedyFallbackSolver{}

	if useOptimizer {
		rooms, err := (&OptimalSolver{}).Solve(ctx, participants, cfg, rng)
		if err == nil {
			return score(participants, rooms, StatusOptimal)
		}
		log.Warn("optimizer failed, substituting fallback heuristic",
			zap.Error(err),
			zap.Int("participants", len(participants)))
		rooms, _ = fallback.Solve(ctx, participants, cfg, rng)
		return score(participants, rooms, StatusFallback)
	}

	rooms, _ := fallback.Solve(ctx, participants, cfg, rng)
	return score(participants, rooms, StatusSimpleScramble)
}

// score annotates a partition with its diagnostics. Satisfaction is the
// fraction of the whole pool placed in a room matching an opted topic;
// heterogeneity compares each room's average spectrum to the global average.
func score(participants []Participant, rooms []Room, status string) Result {
	res := Result{
		Rooms:             rooms,
		SolverStatus:      status,
		TotalParticipants: len(participants),
	}
	if len(participants) == 0 || len(rooms) == 0 {
		return res
	}

	var globalSum float64
	for _, p := range participants {
		globalSum += p.Spectrum
	}
	globalAvg := globalSum / float64(len(participants))

	var matched int
	var deviationSum float64
	for _, room := range rooms {
		res.Placed += len(room.Participants)
		if len(room.Participants) == 0 {
			continue
		}
		var roomSum float64
		for _, p := range room.Participants {
			roomSum += p.Spectrum
			if optedInto(p, room.TopicID) {
				matched++
			}
		}
		roomAvg := roomSum / float64(len(room.Participants))
		deviationSum += math.Abs(roomAvg - globalAvg)
	}

	res.SatisfactionScore = float64(matched) / float64(len(participants))
	res.HeterogeneityScore = math.Max(0, 1-(deviationSum/float64(len(rooms)))/2)
	return res
}

func optedInto(p Participant, topicID string) bool {
	for _, t := range p.OptedTopics {
		if t == topicID {
			return true
		}
	}
	return false
}

// objective is the weighted sum the optimal solver maximizes. It reuses the
// same scoring as the reported diagnostics so the solver optimizes exactly
// what callers see.
func objective(participants []Participant, rooms []Room, cfg Config) float64 {
	ws, wh := cfg.normalized()
	res := score(participants, rooms, "")
	return ws*res.SatisfactionScore + wh*res.HeterogeneityScore
}
