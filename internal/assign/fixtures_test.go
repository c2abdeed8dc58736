// Package assign provides shared fixtures for engine and state tests.
package assign

import (
	"testing"

	"github.com/gouvernante/gouvernante/internal/catalog"
)

// newTestCatalog builds a catalog from parts, failing the test on invalid
// fixture data.
func newTestCatalog(t *testing.T, rooms []catalog.Room, teams []catalog.Team, cons catalog.Constraints, wildcards []string) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(rooms, teams, cons, wildcards, nil)
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	return cat
}

// newTestState builds the initial state for all catalog teams.
func newTestState(t *testing.T, cat *catalog.Catalog) State {
	t.Helper()
	st, err := NewState(cat, nil)
	if err != nil {
		t.Fatalf("build test state: %v", err)
	}
	return st
}

// twoRoomCatalog is the minimal fixture: two floor-1 rooms fixed to a
// single team, with a 3-4 credit target on one floor.
func twoRoomCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return newTestCatalog(t,
		[]catalog.Room{
			{Number: "101", Floor: 1, Credits: 1.5},
			{Number: "104", Floor: 1, Credits: 2},
		},
		[]catalog.Team{
			{ID: "a", Name: "Team A", Color: "#4ade80", FixedRooms: []string{"101", "104"}},
		},
		catalog.Constraints{MinCredits: 3, MaxCredits: 4, MaxFloorsPerTeam: 1, MaxTeamsPerFloor: 1},
		nil,
	)
}

// twoTeamCatalog adds a second team on a second floor, for operations that
// need contention between teams.
func twoTeamCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return newTestCatalog(t,
		[]catalog.Room{
			{Number: "101", Floor: 1, Credits: 1.5},
			{Number: "104", Floor: 1, Credits: 2},
			{Number: "201", Floor: 2, Credits: 2},
		},
		[]catalog.Team{
			{ID: "a", Name: "Team A", Color: "#4ade80", FixedRooms: []string{"101"}},
			{ID: "b", Name: "Team B", Color: "#60a5fa", FixedRooms: []string{"201"}},
		},
		catalog.Constraints{MinCredits: 2, MaxCredits: 4, MaxFloorsPerTeam: 2, MaxTeamsPerFloor: 2},
		nil,
	)
}

// checkPartition verifies that the pool, the assignments, and the unassigned
// out-of-service rooms partition the catalog exactly, with no room held
// twice.
func checkPartition(t *testing.T, st State, cat *catalog.Catalog) {
	t.Helper()
	seen := map[string]string{}
	for _, room := range st.Available {
		if prior, dup := seen[room.Number]; dup {
			t.Fatalf("room %s in pool and in %s", room.Number, prior)
		}
		seen[room.Number] = "pool"
	}
	for _, team := range st.Teams {
		for _, number := range team.AssignedRooms {
			if prior, dup := seen[number]; dup {
				t.Fatalf("room %s held by %s and by team %s", number, prior, team.ID)
			}
			seen[number] = "team " + team.ID
		}
	}
	for number := range st.OutOfService {
		if _, placed := seen[number]; !placed {
			seen[number] = "out-of-service"
		}
	}
	for _, room := range cat.Rooms {
		if _, placed := seen[room.Number]; !placed {
			t.Fatalf("room %s is in no pool, assignment, or out-of-service set", room.Number)
		}
	}
	if len(seen) != len(cat.Rooms) {
		t.Fatalf("state tracks %d rooms, catalog has %d", len(seen), len(cat.Rooms))
	}
}

// checkCachedStats verifies the standing invariant that every team's cached
// stats equal a fresh computation over its assigned rooms.
func checkCachedStats(t *testing.T, st State, cat *catalog.Catalog) {
	t.Helper()
	for _, team := range st.Teams {
		stats := Compute(team.AssignedRooms, cat)
		if team.TotalCredits != stats.TotalCredits {
			t.Fatalf("team %s cached credits %v, computed %v", team.ID, team.TotalCredits, stats.TotalCredits)
		}
		if len(team.Floors) != len(stats.Floors) {
			t.Fatalf("team %s cached floors %v, computed %v", team.ID, team.Floors, stats.Floors)
		}
		for i := range team.Floors {
			if team.Floors[i] != stats.Floors[i] {
				t.Fatalf("team %s cached floors %v, computed %v", team.ID, team.Floors, stats.Floors)
			}
		}
	}
}
