// internal/app/engine/optimize/fallback.go
package optimize

import (
	"context"
	"math/rand"
	"sort"
)

// GreedyFallbackSolver is the guaranteed-to-succeed bucketing heuristic:
// participants are grouped by their first opted topic, sorted by spectrum,
// and cut into consecutive near-even windows, so each room mixes adjacent
// but distinct spectrum values instead of clustering identical ones.
//
// It is fully deterministic, always terminates, and places every participant
// who opted into at least one topic. It never returns an error.
type GreedyFallbackSolver struct{}

func (s *GreedyFallbackSolver) Solve(_ context.Context, participants []Participant, cfg Config, _ *rand.Rand) ([]Room, error) {
	buckets := make(map[string][]Participant)
	for _, p := range participants {
		if len(p.OptedTopics) == 0 {
			continue
		}
		first := p.OptedTopics[0]
		buckets[first] = append(buckets[first], p)
	}

	topics := make([]string, 0, len(buckets))
	for topic := range buckets {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	var rooms []Room
	for _, topic := range topics {
		members := buckets[topic]
		sort.Slice(members, func(i, j int) bool {
			if members[i].Spectrum != members[j].Spectrum {
				return members[i].Spectrum < members[j].Spectrum
			}
			return members[i].ID < members[j].ID
		})

		for _, size := range windowSizes(len(members), cfg.MinRoomSize, cfg.MaxRoomSize) {
			rooms = append(rooms, Room{
				TopicID:      topic,
				Participants: members[:size],
			})
			members = members[size:]
		}
	}
	return rooms, nil
}

// windowSizes splits n members into consecutive near-even windows. Room
// count starts at ceil(n/max) and shrinks while the even split would fall
// under min, so the min bound wins over max when the two conflict (everyone
// must be placed; a slightly oversized room beats dropping people).
func windowSizes(n, min, max int) []int {
	if n == 0 {
		return nil
	}
	if max < 1 {
		max = 1
	}

	count := (n + max - 1) / max
	for count > 1 && n/count < min {
		count--
	}

	base := n / count
	extra := n % count
	sizes := make([]int, count)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}
