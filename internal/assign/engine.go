package assign

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gouvernante/gouvernante/internal/catalog"
)

// Options tunes an auto-assign run. Shuffle randomizes the phase-2 backfill
// pool; when nil, a time-seeded shuffle is used. Tests inject a seeded
// shuffle to make runs deterministic.
type Options struct {
	Shuffle func([]catalog.Room)
}

// Result carries the outcome of an auto-assign run: the new state, the
// constraint-violation warnings found in it, and a run identifier for the
// operation log. The engine never fails; an infeasible day surfaces as
// warnings and leftover rooms, not as an error.
type Result struct {
	RunID    string
	State    State
	Warnings []Warning
}

// SeededShuffle returns a shuffle function backed by a fixed seed.
func SeededShuffle(seed int64) func([]catalog.Room) {
	rng := rand.New(rand.NewSource(seed))
	return func(rooms []catalog.Room) {
		rng.Shuffle(len(rooms), func(i, j int) {
			rooms[i], rooms[j] = rooms[j], rooms[i]
		})
	}
}

// AutoAssign distributes the available pool over the active teams in three
// phases: zone-priority fill toward each team's minimum, randomized backfill
// up to the minimum, and surplus distribution up to the maximum once every
// team has reached the minimum. Hard ceilings (max credits, floor span,
// teams per floor) are never exceeded; minimums are best-effort.
func AutoAssign(st State, cat *catalog.Catalog, opts Options) Result {
	next := st.Clone()
	runID := uuid.NewString()
	if len(next.Teams) == 0 {
		return Result{RunID: runID, State: next}
	}

	cons := cat.Constraints
	shuffle := opts.Shuffle
	if shuffle == nil {
		shuffle = SeededShuffle(time.Now().UnixNano())
	}

	// Working copy of the team -> assigned-rooms map for global checks.
	proposed := make(map[string][]string, len(next.Teams))
	for _, team := range next.Teams {
		proposed[team.ID] = append([]string(nil), team.AssignedRooms...)
	}

	// Phase 1: zone-priority fill. Teams with larger fixed zones go first to
	// reduce contention for shared boundary rooms; within a zone, bigger
	// rooms go first to reach the minimum in fewer rooms.
	order := make([]int, len(next.Teams))
	for i := range next.Teams {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		left, _ := cat.Team(next.Teams[order[a]].ID)
		right, _ := cat.Team(next.Teams[order[b]].ID)
		if len(left.FixedRooms) != len(right.FixedRooms) {
			return len(left.FixedRooms) > len(right.FixedRooms)
		}
		return left.ID < right.ID
	})

	for _, idx := range order {
		team := &next.Teams[idx]
		catTeam, _ := cat.Team(team.ID)
		zone := map[string]bool{}
		for _, number := range catTeam.FixedRooms {
			zone[number] = true
		}
		candidates := []catalog.Room{}
		for _, room := range next.Available {
			if zone[room.Number] {
				candidates = append(candidates, room)
			}
		}
		sort.SliceStable(candidates, func(a, b int) bool {
			if candidates[a].Credits != candidates[b].Credits {
				return candidates[a].Credits > candidates[b].Credits
			}
			return candidates[a].Number < candidates[b].Number
		})

		for _, room := range candidates {
			if team.TotalCredits >= cons.MinCredits {
				break
			}
			tryClaim(&next, team, proposed, room, cons, cat)
		}
	}

	// Phase 2: minimum-credit backfill over the shuffled leftover pool. The
	// shuffle is a deliberate tie-break so no floor or zone is systematically
	// favored when topping up shortfalls. Strict cap at the minimum here.
	backfill := append([]catalog.Room(nil), next.Available...)
	shuffle(backfill)
	for i := range next.Teams {
		team := &next.Teams[i]
		if team.TotalCredits >= cons.MinCredits {
			continue
		}
		for _, room := range backfill {
			if !next.IsAvailable(room.Number) {
				continue
			}
			if team.TotalCredits+room.Credits > cons.MinCredits {
				continue
			}
			tryClaim(&next, team, proposed, room, cons, cat)
		}
	}

	// Phase 3: surplus distribution up to the maximum, only when every team
	// has reached its minimum.
	allAtMin := true
	for _, team := range next.Teams {
		if team.TotalCredits < cons.MinCredits {
			allAtMin = false
			break
		}
	}
	if allAtMin {
		for i := range next.Teams {
			team := &next.Teams[i]
			remaining := append([]catalog.Room(nil), next.Available...)
			for _, room := range remaining {
				tryClaim(&next, team, proposed, room, cons, cat)
			}
		}
	}

	// The cached stats are maintained claim by claim; re-derive them from
	// the final assignments anyway so the standing invariant holds by
	// construction.
	for i := range next.Teams {
		refreshStats(&next.Teams[i], cat)
	}

	return Result{RunID: runID, State: next, Warnings: ScanWarnings(next, cat)}
}

// tryClaim assigns the room to the team when both the team-local and the
// global floor-occupancy checks pass, removing it from the pool so later
// teams in the same phase see it as taken. Reports whether the room was
// claimed.
func tryClaim(st *State, team *Team, proposed map[string][]string, room catalog.Room, cons catalog.Constraints, cat *catalog.Catalog) bool {
	current := Stats{TotalCredits: team.TotalCredits, Floors: team.Floors, RoomCount: len(team.AssignedRooms)}
	if !FitsTeam(current, room, cons) {
		return false
	}
	proposed[team.ID] = append(proposed[team.ID], room.Number)
	if !FloorOccupancyOK(proposed, room.Floor, cat, cons) {
		proposed[team.ID] = proposed[team.ID][:len(proposed[team.ID])-1]
		return false
	}
	team.AssignedRooms = append(team.AssignedRooms, room.Number)
	team.TotalCredits += room.Credits
	if !containsInt(team.Floors, room.Floor) {
		team.Floors = append(team.Floors, room.Floor)
		sort.Ints(team.Floors)
	}
	st.Available = removeFromPool(st.Available, room.Number)
	return true
}
