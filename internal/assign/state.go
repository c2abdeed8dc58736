package assign

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gouvernante/gouvernante/internal/catalog"
)

// Sentinel errors returned by state operations.
var (
	// ErrUnknownTeam is returned when the team id does not resolve.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrUnknownRoom is returned when the room number does not resolve.
	ErrUnknownRoom = errors.New("unknown room")
	// ErrRoomHeldByOtherTeam is returned when a toggle targets a room
	// currently assigned to a different team. The caller must unassign it
	// there first; the state is returned unchanged.
	ErrRoomHeldByOtherTeam = errors.New("room assigned to another team")
	// ErrRoomOutOfService is returned when a toggle tries to assign a room
	// the room manager has taken out of service.
	ErrRoomOutOfService = errors.New("room out of service")
)

// Team is one active team's slice of the session: its assigned rooms and
// the stats cached from them. TotalCredits, Floors, and RoomCount always
// equal what Compute would return for AssignedRooms; every mutation
// re-establishes that.
type Team struct {
	ID            string
	AssignedRooms []string
	TotalCredits  float64
	Floors        []int
}

// State is the session's assignment snapshot: the available-room pool, the
// active teams, and the rooms taken out of service. Operations never mutate
// a State in place; they return a fresh snapshot, so callers get
// all-or-nothing visibility of each mutation.
type State struct {
	Available    []catalog.Room
	Teams        []Team
	OutOfService map[string]bool
}

// NewState builds the initial session state: every selected team active with
// an empty assignment and every catalog room available. Nil or empty
// teamIDs selects all catalog teams, in catalog order.
func NewState(cat *catalog.Catalog, teamIDs []string) (State, error) {
	if len(teamIDs) == 0 {
		teamIDs = cat.TeamIDs()
	}
	selected := map[string]bool{}
	for _, id := range teamIDs {
		if _, ok := cat.Team(id); !ok {
			return State{}, fmt.Errorf("%w: %s", ErrUnknownTeam, id)
		}
		selected[id] = true
	}

	st := State{OutOfService: map[string]bool{}}
	for _, team := range cat.Teams {
		if selected[team.ID] {
			st.Teams = append(st.Teams, Team{ID: team.ID})
		}
	}
	st.Available = append(st.Available, cat.Rooms...)
	sortPool(st.Available)
	return st, nil
}

// Clone returns a deep copy of the state.
func (st State) Clone() State {
	next := State{
		Available:    append([]catalog.Room(nil), st.Available...),
		Teams:        make([]Team, len(st.Teams)),
		OutOfService: make(map[string]bool, len(st.OutOfService)),
	}
	for i, team := range st.Teams {
		next.Teams[i] = Team{
			ID:            team.ID,
			AssignedRooms: append([]string(nil), team.AssignedRooms...),
			TotalCredits:  team.TotalCredits,
			Floors:        append([]int(nil), team.Floors...),
		}
	}
	for number, out := range st.OutOfService {
		if out {
			next.OutOfService[number] = true
		}
	}
	return next
}

// Team returns the active team with the given id.
func (st State) Team(id string) (Team, bool) {
	for _, team := range st.Teams {
		if team.ID == id {
			return team, true
		}
	}
	return Team{}, false
}

// Assignee returns the id of the team holding the given room, if any.
func (st State) Assignee(roomNumber string) (string, bool) {
	for _, team := range st.Teams {
		for _, number := range team.AssignedRooms {
			if number == roomNumber {
				return team.ID, true
			}
		}
	}
	return "", false
}

// IsAvailable reports whether the room is in the available pool.
func (st State) IsAvailable(roomNumber string) bool {
	for _, room := range st.Available {
		if room.Number == roomNumber {
			return true
		}
	}
	return false
}

// AssignedRoomCount returns the number of rooms held across all teams.
func (st State) AssignedRoomCount() int {
	count := 0
	for _, team := range st.Teams {
		count += len(team.AssignedRooms)
	}
	return count
}

// Reset clears every team's assignment and restores the available pool to
// the full eligible room set: all catalog rooms minus those out of service.
func Reset(st State, cat *catalog.Catalog) State {
	next := st.Clone()
	for i := range next.Teams {
		next.Teams[i].AssignedRooms = nil
		next.Teams[i].TotalCredits = 0
		next.Teams[i].Floors = nil
	}
	next.Available = next.Available[:0]
	for _, room := range cat.Rooms {
		if !next.OutOfService[room.Number] {
			next.Available = append(next.Available, room)
		}
	}
	sortPool(next.Available)
	return next
}

// ToggleRoom assigns the room to the team when it is unassigned, or returns
// it to the pool when that team already holds it. No feasibility check is
// applied: the manager may deliberately exceed constraints, and the caller
// surfaces any violation visually instead of blocking. A room held by a
// different team is rejected with ErrRoomHeldByOtherTeam.
func ToggleRoom(st State, cat *catalog.Catalog, teamID string, roomNumber string) (State, error) {
	if _, ok := cat.Room(roomNumber); !ok {
		return st, fmt.Errorf("%w: %s", ErrUnknownRoom, roomNumber)
	}
	next := st.Clone()
	idx := -1
	for i, team := range next.Teams {
		if team.ID == teamID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return st, fmt.Errorf("%w: %s", ErrUnknownTeam, teamID)
	}

	team := &next.Teams[idx]
	if pos := indexOf(team.AssignedRooms, roomNumber); pos >= 0 {
		// Unassign. The room returns to the pool unless it was taken out of
		// service while assigned.
		team.AssignedRooms = append(team.AssignedRooms[:pos], team.AssignedRooms[pos+1:]...)
		if len(team.AssignedRooms) == 0 {
			team.AssignedRooms = nil
		}
		if !next.OutOfService[roomNumber] {
			room, _ := cat.Room(roomNumber)
			next.Available = append(next.Available, room)
			sortPool(next.Available)
		}
		refreshStats(team, cat)
		return next, nil
	}

	if holder, held := next.Assignee(roomNumber); held && holder != teamID {
		return st, fmt.Errorf("%w: %s held by %s", ErrRoomHeldByOtherTeam, roomNumber, holder)
	}
	if next.OutOfService[roomNumber] {
		return st, fmt.Errorf("%w: %s", ErrRoomOutOfService, roomNumber)
	}

	team.AssignedRooms = append(team.AssignedRooms, roomNumber)
	next.Available = removeFromPool(next.Available, roomNumber)
	refreshStats(team, cat)
	return next, nil
}

// SetRoomAvailability marks a room in or out of service, independent of any
// team assignment. Taking a room out of service removes it from the pool;
// an assigned room stays assigned but will not return to the pool when
// unassigned. Bringing a room back adds it to the pool unless a team holds
// it.
func SetRoomAvailability(st State, cat *catalog.Catalog, roomNumber string, available bool) (State, error) {
	room, ok := cat.Room(roomNumber)
	if !ok {
		return st, fmt.Errorf("%w: %s", ErrUnknownRoom, roomNumber)
	}
	next := st.Clone()
	if !available {
		next.OutOfService[roomNumber] = true
		next.Available = removeFromPool(next.Available, roomNumber)
		return next, nil
	}
	delete(next.OutOfService, roomNumber)
	if _, held := next.Assignee(roomNumber); !held && !next.IsAvailable(roomNumber) {
		next.Available = append(next.Available, room)
		sortPool(next.Available)
	}
	return next, nil
}

// SetTeamActive adds a team to or removes it from the day's round.
// Activating an already-active team is a no-op; deactivating returns the
// team's rooms to the pool (except those out of service) so no room is
// stranded outside both the pool and every assignment.
func SetTeamActive(st State, cat *catalog.Catalog, teamID string, active bool) (State, error) {
	if _, ok := cat.Team(teamID); !ok {
		return st, fmt.Errorf("%w: %s", ErrUnknownTeam, teamID)
	}
	next := st.Clone()
	idx := -1
	for i, team := range next.Teams {
		if team.ID == teamID {
			idx = i
			break
		}
	}

	if active {
		if idx >= 0 {
			return next, nil
		}
		next.Teams = insertInCatalogOrder(next.Teams, Team{ID: teamID}, cat)
		return next, nil
	}

	if idx < 0 {
		return next, nil
	}
	for _, number := range next.Teams[idx].AssignedRooms {
		if next.OutOfService[number] {
			continue
		}
		if room, ok := cat.Room(number); ok {
			next.Available = append(next.Available, room)
		}
	}
	sortPool(next.Available)
	next.Teams = append(next.Teams[:idx], next.Teams[idx+1:]...)
	return next, nil
}

// refreshStats re-derives the team's cached stats from its assigned rooms.
func refreshStats(team *Team, cat *catalog.Catalog) {
	stats := Compute(team.AssignedRooms, cat)
	team.TotalCredits = stats.TotalCredits
	team.Floors = stats.Floors
}

// insertInCatalogOrder places the team among the active teams following the
// catalog's team ordering.
func insertInCatalogOrder(teams []Team, team Team, cat *catalog.Catalog) []Team {
	order := map[string]int{}
	for i, id := range cat.TeamIDs() {
		order[id] = i
	}
	teams = append(teams, team)
	sort.SliceStable(teams, func(i, j int) bool {
		return order[teams[i].ID] < order[teams[j].ID]
	})
	return teams
}

// sortPool keeps the available pool ordered by room number.
func sortPool(rooms []catalog.Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].Number < rooms[j].Number
	})
}

// removeFromPool drops the room with the given number from the pool.
func removeFromPool(rooms []catalog.Room, number string) []catalog.Room {
	for i, room := range rooms {
		if room.Number == number {
			return append(rooms[:i], rooms[i+1:]...)
		}
	}
	return rooms
}

// indexOf returns the position of the value in the slice, or -1.
func indexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}
