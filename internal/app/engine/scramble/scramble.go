// Package scramble partitions a participant pool into fixed-size rooms while
// spreading each demographic stratum as evenly as possible across them.
//
// Placement visits strata one at a time (in a shuffled order) and drops each
// member into the currently least-full room. Visiting groups in turn, rather
// than flattening the whole pool first, is what interleaves a stratum across
// rooms instead of clustering it in one.
package scramble

import (
	"math"
	"math/rand"
	"sort"

	"github.com/convohub/convohub/internal/app/engine/demokey"
)

// Participant is one member of the pool to partition.
type Participant struct {
	ID      string
	Name    string
	Answers map[string]string
}

// Room is one produced room. Numbers start at 1; the numbering manager
// offsets them before persisting.
type Room struct {
	Number       int
	Participants []Participant
}

// Result is the outcome of one scramble.
type Result struct {
	Rooms             []Room
	TotalRooms        int
	TotalParticipants int
	GroupCount        int
	BalanceScore      float64
}

// Scramble partitions participants into ceil(N/roomSize) rooms stratified by
// the demographic key over questionIDs. The caller validates roomSize >= 2
// before reaching this stage. rng drives every shuffle so a fixed source
// reproduces the exact partition.
func Scramble(participants []Participant, questionIDs []string, roomSize int, rng *rand.Rand) Result {
	n := len(participants)
	if n == 0 {
		return Result{BalanceScore: 0}
	}

	// Split the pool: complete profiles are grouped by key, incomplete ones
	// are held back for random placement at the end.
	groups := make(map[string][]Participant)
	var incomplete []Participant
	for _, p := range participants {
		key, complete := demokey.Build(p.Answers, questionIDs)
		if !complete {
			incomplete = append(incomplete, p)
			continue
		}
		groups[key] = append(groups[key], p)
	}

	totalRooms := (n + roomSize - 1) / roomSize
	rooms := make([]Room, totalRooms)
	for i := range rooms {
		rooms[i] = Room{Number: i + 1}
	}

	// Shuffle members within each group to erase upstream query ordering.
	for key := range groups {
		members := groups[key]
		rng.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})
	}

	// Shuffle the order groups are visited in so no stratum is systematically
	// placed first across runs. Keys are sorted before shuffling: map
	// iteration order must not leak into the result.
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	rng.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})

	for _, key := range keys {
		for _, p := range groups[key] {
			rooms[leastFull(rooms)].add(p)
		}
	}

	// Incomplete profiles go one at a time to the least-full room still under
	// capacity. When every room is full, overflow into the globally
	// least-full room rather than dropping anyone.
	rng.Shuffle(len(incomplete), func(i, j int) {
		incomplete[i], incomplete[j] = incomplete[j], incomplete[i]
	})
	for _, p := range incomplete {
		idx := leastFullUnder(rooms, roomSize)
		if idx < 0 {
			idx = leastFull(rooms)
		}
		rooms[idx].add(p)
	}

	sizes := make([]int, len(rooms))
	for i, room := range rooms {
		sizes[i] = len(room.Participants)
	}

	return Result{
		Rooms:             rooms,
		TotalRooms:        totalRooms,
		TotalParticipants: n,
		GroupCount:        len(groups),
		BalanceScore:      BalanceScore(sizes, len(groups)),
	}
}

func (r *Room) add(p Participant) {
	r.Participants = append(r.Participants, p)
}

// leastFull returns the index of the first room with the fewest participants.
func leastFull(rooms []Room) int {
	best := 0
	for i := 1; i < len(rooms); i++ {
		if len(rooms[i].Participants) < len(rooms[best].Participants) {
			best = i
		}
	}
	return best
}

// leastFullUnder returns the index of the first least-full room strictly
// under the capacity, or -1 when every room is at or over it.
func leastFullUnder(rooms []Room, capacity int) int {
	best := -1
	for i := range rooms {
		if len(rooms[i].Participants) >= capacity {
			continue
		}
		if best < 0 || len(rooms[i].Participants) < len(rooms[best].Participants) {
			best = i
		}
	}
	return best
}

// BalanceScore is a diagnostic in [0,1]: 1 when room sizes are perfectly
// even, decreasing as size variance grows relative to the average size.
// Trivially 1 with at most one room or one demographic group (nothing to
// balance) and 0 with no rooms at all. It never feeds back into placement.
func BalanceScore(roomSizes []int, groupCount int) float64 {
	if len(roomSizes) == 0 {
		return 0
	}
	if len(roomSizes) == 1 || groupCount <= 1 {
		return 1
	}

	var sum float64
	for _, s := range roomSizes {
		sum += float64(s)
	}
	avg := sum / float64(len(roomSizes))
	if avg == 0 {
		return 0
	}

	var variance float64
	for _, s := range roomSizes {
		d := float64(s) - avg
		variance += d * d
	}
	variance /= float64(len(roomSizes))

	return math.Max(0, math.Min(1, 1-variance/(avg*avg)))
}
