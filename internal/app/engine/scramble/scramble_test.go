package scramble

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

var questionIDs = []string{"age", "region"}

func pool(n int, answers func(i int) map[string]string) []Participant {
	ps := make([]Participant, n)
	for i := range ps {
		ps[i] = Participant{
			ID:      fmt.Sprintf("u%03d", i),
			Name:    fmt.Sprintf("User %d", i),
			Answers: answers(i),
		}
	}
	return ps
}

func evenAnswers(i int) map[string]string {
	regions := []string{"north", "south", "east"}
	return map[string]string{
		"age":    fmt.Sprintf("band-%d", i%2),
		"region": regions[i%3],
	}
}

func collectIDs(t *testing.T, res Result) map[string]int {
	t.Helper()
	seen := make(map[string]int)
	for _, room := range res.Rooms {
		for _, p := range room.Participants {
			seen[p.ID]++
		}
	}
	return seen
}

func TestScramble_EmptyPool(t *testing.T) {
	res := Scramble(nil, questionIDs, 4, rand.New(rand.NewSource(1)))

	if res.TotalRooms != 0 || res.TotalParticipants != 0 {
		t.Errorf("expected zero rooms and participants, got %d/%d", res.TotalRooms, res.TotalParticipants)
	}
	if res.BalanceScore != 0 {
		t.Errorf("BalanceScore = %v, want 0 for empty input", res.BalanceScore)
	}
	if len(res.Rooms) != 0 {
		t.Errorf("expected no rooms, got %d", len(res.Rooms))
	}
}

func TestScramble_Conservation(t *testing.T) {
	for _, n := range []int{1, 4, 7, 23, 100} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			ps := pool(n, evenAnswers)
			res := Scramble(ps, questionIDs, 4, rand.New(rand.NewSource(int64(n))))

			seen := collectIDs(t, res)
			if len(seen) != n {
				t.Fatalf("placed %d distinct participants, want %d", len(seen), n)
			}
			for id, count := range seen {
				if count != 1 {
					t.Errorf("participant %s placed %d times", id, count)
				}
			}

			total := 0
			for _, room := range res.Rooms {
				total += len(room.Participants)
			}
			if total != res.TotalParticipants {
				t.Errorf("room sizes sum to %d, TotalParticipants is %d", total, res.TotalParticipants)
			}
		})
	}
}

func TestScramble_RoomCount(t *testing.T) {
	for _, tc := range []struct {
		n, size, want int
	}{
		{1, 2, 1},
		{4, 4, 1},
		{5, 4, 2},
		{7, 4, 2},
		{8, 4, 2},
		{9, 4, 3},
		{10, 3, 4},
	} {
		ps := pool(tc.n, evenAnswers)
		res := Scramble(ps, questionIDs, tc.size, rand.New(rand.NewSource(7)))
		if res.TotalRooms != tc.want {
			t.Errorf("n=%d size=%d: TotalRooms = %d, want %d", tc.n, tc.size, res.TotalRooms, tc.want)
		}
		if len(res.Rooms) != tc.want {
			t.Errorf("n=%d size=%d: len(Rooms) = %d, want %d", tc.n, tc.size, len(res.Rooms), tc.want)
		}
	}
}

func TestScramble_RoomNumbersSequential(t *testing.T) {
	res := Scramble(pool(9, evenAnswers), questionIDs, 4, rand.New(rand.NewSource(3)))
	for i, room := range res.Rooms {
		if room.Number != i+1 {
			t.Errorf("room %d has number %d", i, room.Number)
		}
	}
}

func TestScramble_DeterministicWithFixedSource(t *testing.T) {
	ps := pool(31, evenAnswers)

	a := Scramble(ps, questionIDs, 5, rand.New(rand.NewSource(42)))
	b := Scramble(pool(31, evenAnswers), questionIDs, 5, rand.New(rand.NewSource(42)))

	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same source produced different partitions")
	}

	c := Scramble(pool(31, evenAnswers), questionIDs, 5, rand.New(rand.NewSource(43)))
	if reflect.DeepEqual(a.Rooms, c.Rooms) {
		// Not strictly impossible, but with 31 participants it would mean the
		// shuffles are being ignored.
		t.Error("different sources produced identical partitions")
	}
}

func TestScramble_StrataInterleaved(t *testing.T) {
	// 5 participants with key "1.0", 2 with key "0.5", roomSize 4: two rooms,
	// and both strata must appear in both rooms whenever each has >= 2 members.
	ps := make([]Participant, 0, 7)
	for i := 0; i < 5; i++ {
		ps = append(ps, Participant{ID: fmt.Sprintf("a%d", i), Answers: map[string]string{"k": "1.0"}})
	}
	for i := 0; i < 2; i++ {
		ps = append(ps, Participant{ID: fmt.Sprintf("b%d", i), Answers: map[string]string{"k": "0.5"}})
	}

	for seed := int64(0); seed < 20; seed++ {
		res := Scramble(ps, []string{"k"}, 4, rand.New(rand.NewSource(seed)))
		if res.TotalRooms != 2 {
			t.Fatalf("seed %d: TotalRooms = %d, want 2", seed, res.TotalRooms)
		}
		for _, room := range res.Rooms {
			n := len(room.Participants)
			if n != 3 && n != 4 {
				t.Errorf("seed %d: room %d has %d participants, want 3 or 4", seed, room.Number, n)
			}
			var majors, minors int
			for _, p := range room.Participants {
				if p.Answers["k"] == "1.0" {
					majors++
				} else {
					minors++
				}
			}
			if majors == n || minors == n {
				t.Errorf("seed %d: room %d is single-stratum (%d/%d)", seed, room.Number, majors, minors)
			}
		}
	}
}

func TestScramble_SingleGroupDegeneratesToRoundRobin(t *testing.T) {
	ps := pool(10, func(int) map[string]string {
		return map[string]string{"age": "18-29", "region": "north"}
	})
	res := Scramble(ps, questionIDs, 4, rand.New(rand.NewSource(9)))

	if res.GroupCount != 1 {
		t.Fatalf("GroupCount = %d, want 1", res.GroupCount)
	}
	if res.BalanceScore != 1 {
		t.Errorf("BalanceScore = %v, want 1 for a single group", res.BalanceScore)
	}
	// 10 into 3 rooms by least-full placement: 4/3/3.
	sizes := make(map[int]int)
	for _, room := range res.Rooms {
		sizes[len(room.Participants)]++
	}
	if sizes[4] != 1 || sizes[3] != 2 {
		t.Errorf("room sizes = %v, want one of 4 and two of 3", sizes)
	}
}

func TestScramble_IncompleteProfilesStillPlaced(t *testing.T) {
	ps := pool(8, evenAnswers)
	// Strip answers from three participants.
	for i := 0; i < 3; i++ {
		ps[i].Answers = nil
	}

	res := Scramble(ps, questionIDs, 4, rand.New(rand.NewSource(11)))
	seen := collectIDs(t, res)
	if len(seen) != 8 {
		t.Errorf("placed %d participants, want all 8", len(seen))
	}
	for _, room := range res.Rooms {
		if len(room.Participants) > 4 {
			t.Errorf("room %d over capacity with complete rooms available: %d", room.Number, len(room.Participants))
		}
	}
}

func TestScramble_AllIncomplete(t *testing.T) {
	ps := pool(6, func(int) map[string]string { return nil })
	res := Scramble(ps, questionIDs, 3, rand.New(rand.NewSource(5)))

	if len(collectIDs(t, res)) != 6 {
		t.Error("incomplete-only pool must still be fully placed")
	}
	if res.GroupCount != 0 {
		t.Errorf("GroupCount = %d, want 0", res.GroupCount)
	}
}

func TestBalanceScore_Bounds(t *testing.T) {
	cases := [][]int{
		{4, 4, 4},
		{4, 3},
		{10, 1},
		{1, 1, 1, 20},
		{},
	}
	for _, sizes := range cases {
		got := BalanceScore(sizes, 3)
		if got < 0 || got > 1 {
			t.Errorf("BalanceScore(%v) = %v out of [0,1]", sizes, got)
		}
	}
}

func TestBalanceScore_PerfectlyEven(t *testing.T) {
	if got := BalanceScore([]int{5, 5, 5, 5}, 4); got != 1 {
		t.Errorf("BalanceScore = %v, want 1 for even rooms", got)
	}
}

func TestBalanceScore_TrivialCases(t *testing.T) {
	if got := BalanceScore([]int{7}, 3); got != 1 {
		t.Errorf("single room: got %v, want 1", got)
	}
	if got := BalanceScore([]int{2, 9}, 1); got != 1 {
		t.Errorf("single group: got %v, want 1", got)
	}
	if got := BalanceScore(nil, 0); got != 0 {
		t.Errorf("no rooms: got %v, want 0", got)
	}
}

func TestBalanceScore_DecreasesWithVariance(t *testing.T) {
	even := BalanceScore([]int{4, 4, 4}, 2)
	skew := BalanceScore([]int{6, 4, 2}, 2)
	worse := BalanceScore([]int{10, 1, 1}, 2)

	if !(even > skew && skew > worse) {
		t.Errorf("expected monotone decrease, got %v, %v, %v", even, skew, worse)
	}
}
