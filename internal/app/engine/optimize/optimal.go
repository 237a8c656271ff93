// internal/app/engine/optimize/optimal.go
package optimize

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrInfeasible reports that no partition can satisfy the size bounds for
// the given pool. Callers treat it (like every solver error) as recoverable.
var ErrInfeasible = errors.New("no feasible room partition under the size bounds")

// OptimalSolver is the embedded optimization path: participant-to-room
// assignment seeded greedily and improved by pairwise-swap local search on
// the weighted satisfaction/heterogeneity objective, under hard per-room
// size bounds. It honors the context deadline and fails rather than return
// a bound-violating partition.
type OptimalSolver struct {
	// MaxEvals caps the number of candidate swaps evaluated. Zero means the
	// default budget.
	MaxEvals int
}

const defaultMaxEvals = 20000

func (s *OptimalSolver) Solve(ctx context.Context, participants []Participant, cfg Config, rng *rand.Rand) ([]Room, error) {
	eligible := make([]Participant, 0, len(participants))
	for _, p := range participants {
		if len(p.OptedTopics) > 0 {
			eligible = append(eligible, p)
		}
	}
	n := len(eligible)
	if n == 0 {
		return nil, fmt.Errorf("%w: no participant opted into any topic", ErrInfeasible)
	}
	if n < cfg.MinRoomSize {
		return nil, fmt.Errorf("%w: %d participants for minimum room size %d", ErrInfeasible, n, cfg.MinRoomSize)
	}

	roomCount := (n + cfg.MaxRoomSize - 1) / cfg.MaxRoomSize
	if roomCount*cfg.MinRoomSize > n {
		return nil, fmt.Errorf("%w: %d participants cannot fill %d rooms of at least %d", ErrInfeasible, n, roomCount, cfg.MinRoomSize)
	}

	rooms := seed(eligible, roomCount, rng)
	if err := s.improve(ctx, eligible, rooms, cfg, rng); err != nil {
		return nil, err
	}
	return rooms, nil
}

// seed builds the initial assignment: rooms cycle through the topics in
// first-choice demand order, each room is filled with opted
// participants from the ends of the spectrum-sorted bucket inward (mixing
// extremes raises in-room heterogeneity), and any leftovers top off the
// remaining open rooms.
func seed(eligible []Participant, roomCount int, rng *rand.Rand) []Room {
	n := len(eligible)
	sizes := make([]int, roomCount)
	base, extra := n/roomCount, n%roomCount
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}

	demand := make(map[string]int)
	for _, p := range eligible {
		demand[p.OptedTopics[0]]++
	}
	topics := make([]string, 0, len(demand))
	for topic := range demand {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if demand[topics[i]] != demand[topics[j]] {
			return demand[topics[i]] > demand[topics[j]]
		}
		return topics[i] < topics[j]
	})

	rooms := make([]Room, roomCount)
	for i := range rooms {
		rooms[i].TopicID = topics[i%len(topics)]
	}

	// Spectrum-sorted queue per first topic; assigned flags by index.
	byTopic := make(map[string][]int)
	for idx, p := range eligible {
		byTopic[p.OptedTopics[0]] = append(byTopic[p.OptedTopics[0]], idx)
	}
	for topic := range byTopic {
		ids := byTopic[topic]
		sort.Slice(ids, func(i, j int) bool {
			a, b := eligible[ids[i]], eligible[ids[j]]
			if a.Spectrum != b.Spectrum {
				return a.Spectrum < b.Spectrum
			}
			return a.ID < b.ID
		})
	}

	assigned := make([]bool, n)
	takeEnds := func(ids []int, want int) []int {
		picked := make([]int, 0, want)
		lo, hi := 0, len(ids)-1
		fromLow := true
		for lo <= hi && len(picked) < want {
			var idx int
			if fromLow {
				idx = ids[lo]
				lo++
			} else {
				idx = ids[hi]
				hi--
			}
			fromLow = !fromLow
			if !assigned[idx] {
				picked = append(picked, idx)
			}
		}
		return picked
	}

	for i := range rooms {
		for _, idx := range takeEnds(byTopic[rooms[i].TopicID], sizes[i]) {
			assigned[idx] = true
			rooms[i].Participants = append(rooms[i].Participants, eligible[idx])
		}
	}

	// Leftovers (topics whose demand exceeded their rooms, or rooms whose
	// topic had too little demand) fill remaining seats in shuffled order.
	var leftovers []int
	for idx := range eligible {
		if !assigned[idx] {
			leftovers = append(leftovers, idx)
		}
	}
	rng.Shuffle(len(leftovers), func(i, j int) {
		leftovers[i], leftovers[j] = leftovers[j], leftovers[i]
	})
	for _, idx := range leftovers {
		for i := range rooms {
			if len(rooms[i].Participants) < sizes[i] {
				rooms[i].Participants = append(rooms[i].Participants, eligible[idx])
				break
			}
		}
	}
	return rooms
}

// improve runs pairwise-swap local search in place: candidate swaps in
// rng order, accepted when the weighted objective strictly improves. Room
// sizes never change, so the bounds established by the seeding hold
// throughout. Stops on budget exhaustion, a full sweep without improvement,
// or context cancellation.
func (s *OptimalSolver) improve(ctx context.Context, eligible []Participant, rooms []Room, cfg Config, rng *rand.Rand) error {
	budget := s.MaxEvals
	if budget <= 0 {
		budget = defaultMaxEvals
	}

	type slot struct{ room, seat int }
	var slots []slot
	for r := range rooms {
		for seat := range rooms[r].Participants {
			slots = append(slots, slot{r, seat})
		}
	}

	current := objective(eligible, rooms, cfg)
	for evals := 0; evals < budget; {
		improved := false
		order := rng.Perm(len(slots))
		for pos, i := range order {
			if evals >= budget {
				break
			}
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("solver interrupted: %w", err)
			}
			j := order[(pos+1)%len(order)]
			a, b := slots[i], slots[j]
			if a.room == b.room {
				continue
			}
			evals++

			pa := rooms[a.room].Participants[a.seat]
			pb := rooms[b.room].Participants[b.seat]
			rooms[a.room].Participants[a.seat] = pb
			rooms[b.room].Participants[b.seat] = pa

			next := objective(eligible, rooms, cfg)
			if next > current {
				current = next
				improved = true
				continue
			}
			// Revert.
			rooms[a.room].Participants[a.seat] = pa
			rooms[b.room].Participants[b.seat] = pb
		}
		if !improved {
			break
		}
	}
	return nil
}
