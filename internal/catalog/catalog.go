// Package catalog provides the immutable hotel reference data: rooms, teams
// with their fixed zones, assignment constraints, and wildcard rooms.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Room describes a single cleanable room. Identity is Number.
type Room struct {
	Number       string  `json:"number"`
	Floor        int     `json:"floor"`
	Credits      float64 `json:"credits"`
	Combined     bool    `json:"combined,omitempty"`
	CombinedWith string  `json:"combined_with,omitempty"`
}

// Team describes a housekeeping team and its fixed zone. The fixed zone is
// the set of room numbers the team is eligible to clean first, independent
// of daily availability.
type Team struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Color      string   `json:"color"`
	FixedRooms []string `json:"fixed_rooms"`
}

// Constraints holds the global workload-balance thresholds for a run.
type Constraints struct {
	MinCredits       float64 `json:"min_credits"`
	MaxCredits       float64 `json:"max_credits"`
	MaxFloorsPerTeam int     `json:"max_floors_per_team"`
	MaxTeamsPerFloor int     `json:"max_teams_per_floor"`
}

// Catalog is the full reference data set, loaded once at process start and
// never mutated afterwards.
type Catalog struct {
	Rooms         []Room
	Teams         []Team
	Constraints   Constraints
	WildcardRooms []string

	roomsByNumber map[string]Room
	teamsByID     map[string]Team
	wildcards     map[string]bool
}

// roomNumberPattern matches plain room numbers ("101") and combined rooms
// ("310+312").
var roomNumberPattern = regexp.MustCompile(`^[0-9]+(\+[0-9]+)?$`)

// New builds a catalog from its parts, indexing rooms and teams. It returns
// an error when the data is structurally invalid; soft problems (a fixed
// zone referencing a room number absent from the room list) are reported
// through warn.
func New(rooms []Room, teams []Team, constraints Constraints, wildcards []string, warn func(string)) (*Catalog, error) {
	if warn == nil {
		warn = func(string) {}
	}

	cat := &Catalog{
		Rooms:         rooms,
		Teams:         teams,
		Constraints:   constraints,
		WildcardRooms: wildcards,
		roomsByNumber: make(map[string]Room, len(rooms)),
		teamsByID:     make(map[string]Team, len(teams)),
		wildcards:     make(map[string]bool, len(wildcards)),
	}

	for _, room := range rooms {
		if room.Number == "" {
			return nil, fmt.Errorf("room with empty number on floor %d", room.Floor)
		}
		if !roomNumberPattern.MatchString(room.Number) {
			return nil, fmt.Errorf("room %q: malformed room number", room.Number)
		}
		if room.Floor <= 0 {
			return nil, fmt.Errorf("room %s: floor must be positive, got %d", room.Number, room.Floor)
		}
		if room.Credits < 0 {
			return nil, fmt.Errorf("room %s: credits must be non-negative, got %v", room.Number, room.Credits)
		}
		if _, exists := cat.roomsByNumber[room.Number]; exists {
			return nil, fmt.Errorf("duplicate room number %s", room.Number)
		}
		cat.roomsByNumber[room.Number] = room
	}

	for _, team := range teams {
		if team.ID == "" {
			return nil, fmt.Errorf("team %q has empty id", team.Name)
		}
		if team.Name == "" {
			return nil, fmt.Errorf("team %s has empty name", team.ID)
		}
		if _, exists := cat.teamsByID[team.ID]; exists {
			return nil, fmt.Errorf("duplicate team id %s", team.ID)
		}
		cat.teamsByID[team.ID] = team
		for _, number := range team.FixedRooms {
			if _, ok := cat.roomsByNumber[number]; !ok {
				warn(fmt.Sprintf("team %s: fixed zone references unknown room %s", team.ID, number))
			}
		}
	}

	for _, number := range wildcards {
		if _, ok := cat.roomsByNumber[number]; !ok {
			warn(fmt.Sprintf("wildcard list references unknown room %s", number))
		}
		cat.wildcards[number] = true
	}

	if err := validateConstraints(constraints); err != nil {
		return nil, err
	}

	return cat, nil
}

// validateConstraints rejects constraint values the engine cannot work with.
func validateConstraints(c Constraints) error {
	if c.MinCredits < 0 {
		return fmt.Errorf("min_credits must be non-negative, got %v", c.MinCredits)
	}
	if c.MaxCredits < c.MinCredits {
		return fmt.Errorf("max_credits %v is below min_credits %v", c.MaxCredits, c.MinCredits)
	}
	if c.MaxFloorsPerTeam <= 0 {
		return fmt.Errorf("max_floors_per_team must be positive, got %d", c.MaxFloorsPerTeam)
	}
	if c.MaxTeamsPerFloor <= 0 {
		return fmt.Errorf("max_teams_per_floor must be positive, got %d", c.MaxTeamsPerFloor)
	}
	return nil
}

// Room returns the room for the given number.
func (cat *Catalog) Room(number string) (Room, bool) {
	room, ok := cat.roomsByNumber[number]
	return room, ok
}

// Team returns the team for the given id.
func (cat *Catalog) Team(id string) (Team, bool) {
	team, ok := cat.teamsByID[id]
	return team, ok
}

// IsWildcard reports whether the room number is on the wildcard list.
func (cat *Catalog) IsWildcard(number string) bool {
	return cat.wildcards[number]
}

// Floors returns the distinct floors present in the room list, ascending.
func (cat *Catalog) Floors() []int {
	seen := map[int]bool{}
	floors := []int{}
	for _, room := range cat.Rooms {
		if !seen[room.Floor] {
			seen[room.Floor] = true
			floors = append(floors, room.Floor)
		}
	}
	sort.Ints(floors)
	return floors
}

// RoomsOnFloor returns the rooms on the given floor in catalog order.
func (cat *Catalog) RoomsOnFloor(floor int) []Room {
	rooms := []Room{}
	for _, room := range cat.Rooms {
		if room.Floor == floor {
			rooms = append(rooms, room)
		}
	}
	return rooms
}

// FloorSummary aggregates the static shape of one floor.
type FloorSummary struct {
	Floor        int
	RoomCount    int
	TotalCredits float64
}

// FloorSummaries returns one summary per floor, ascending by floor.
func (cat *Catalog) FloorSummaries() []FloorSummary {
	summaries := []FloorSummary{}
	for _, floor := range cat.Floors() {
		summary := FloorSummary{Floor: floor}
		for _, room := range cat.RoomsOnFloor(floor) {
			summary.RoomCount++
			summary.TotalCredits += room.Credits
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// TeamIDs returns all team ids in catalog order.
func (cat *Catalog) TeamIDs() []string {
	ids := make([]string, 0, len(cat.Teams))
	for _, team := range cat.Teams {
		ids = append(ids, team.ID)
	}
	return ids
}

// FilterRooms returns catalog rooms matching the given criteria: floor
// (0 means any), and a case-insensitive substring of the room number
// (empty means any). Used by the room listing command.
func (cat *Catalog) FilterRooms(floor int, search string) []Room {
	search = strings.ToLower(search)
	rooms := []Room{}
	for _, room := range cat.Rooms {
		if floor != 0 && room.Floor != floor {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(room.Number), search) {
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms
}

// SortRooms orders rooms in place by the given key: "number" (default),
// "floor" (then number), or "credits" (descending, then number).
func SortRooms(rooms []Room, key string) {
	switch key {
	case "floor":
		sort.SliceStable(rooms, func(i, j int) bool {
			if rooms[i].Floor != rooms[j].Floor {
				return rooms[i].Floor < rooms[j].Floor
			}
			return rooms[i].Number < rooms[j].Number
		})
	case "credits":
		sort.SliceStable(rooms, func(i, j int) bool {
			if rooms[i].Credits != rooms[j].Credits {
				return rooms[i].Credits > rooms[j].Credits
			}
			return rooms[i].Number < rooms[j].Number
		})
	default:
		sort.SliceStable(rooms, func(i, j int) bool {
			return rooms[i].Number < rooms[j].Number
		})
	}
}
