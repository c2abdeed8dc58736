// Package status renders assignment-state summaries for the CLI.
package status

import (
	"fmt"
	"strings"

	"github.com/gouvernante/gouvernante/internal/assign"
	"github.com/gouvernante/gouvernante/internal/catalog"
	"github.com/gouvernante/gouvernante/internal/format"
)

const (
	teamColumnWidth    = 12
	nameColumnWidth    = 12
	roomsColumnWidth   = 6
	creditsColumnWidth = 10
	floorsColumnWidth  = 8
	roomColumnWidth    = 9
	floorColumnWidth   = 6
	marksColumnWidth   = 10
)

// TeamRow is one team's line in the summary table.
type TeamRow struct {
	ID        string
	Name      string
	RoomCount int
	Credits   float64
	Floors    []int
	InRange   bool
}

// Summary captures the display-ready view of an assignment state.
type Summary struct {
	AvailableRooms   int
	AvailableCredits float64
	AssignedRooms    int
	OutOfService     int
	Constraints      catalog.Constraints
	Rows             []TeamRow
	Warnings         []assign.Warning
}

// Build derives a summary from the state and catalog.
func Build(st assign.State, cat *catalog.Catalog) Summary {
	summary := Summary{
		AvailableRooms: len(st.Available),
		AssignedRooms:  st.AssignedRoomCount(),
		OutOfService:   len(st.OutOfService),
		Constraints:    cat.Constraints,
		Warnings:       assign.ScanWarnings(st, cat),
	}
	for _, room := range st.Available {
		summary.AvailableCredits += room.Credits
	}
	for _, team := range st.Teams {
		name := team.ID
		if catTeam, ok := cat.Team(team.ID); ok {
			name = catTeam.Name
		}
		inRange := team.TotalCredits >= cat.Constraints.MinCredits &&
			team.TotalCredits <= cat.Constraints.MaxCredits &&
			len(team.Floors) <= cat.Constraints.MaxFloorsPerTeam
		summary.Rows = append(summary.Rows, TeamRow{
			ID:        team.ID,
			Name:      name,
			RoomCount: len(team.AssignedRooms),
			Credits:   team.TotalCredits,
			Floors:    team.Floors,
			InRange:   inRange,
		})
	}
	return summary
}

// String renders the summary in the fixed-width layout used by the assign
// command.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rooms available=%d assigned=%d out-of-service=%d available-credits=%s\n",
		s.AvailableRooms, s.AssignedRooms, s.OutOfService, format.Credits(s.AvailableCredits))
	fmt.Fprintf(&b, "teams active=%d target=%s-%s credits\n",
		len(s.Rows), format.Credits(s.Constraints.MinCredits), format.Credits(s.Constraints.MaxCredits))

	if len(s.Rows) == 0 {
		b.WriteString("no active teams; nothing to assign")
		return b.String()
	}

	fmt.Fprintf(&b, "%-*s %-*s %-*s %-*s %-*s %s\n",
		teamColumnWidth, "team",
		nameColumnWidth, "name",
		roomsColumnWidth, "rooms",
		creditsColumnWidth, "credits",
		floorsColumnWidth, "floors",
		"status",
	)
	for _, row := range s.Rows {
		mark := "ok"
		if !row.InRange {
			mark = "out-of-range"
		}
		fmt.Fprintf(&b, "%-*s %-*s %-*d %-*s %-*s %s\n",
			teamColumnWidth, row.ID,
			nameColumnWidth, row.Name,
			roomsColumnWidth, row.RoomCount,
			creditsColumnWidth, format.CreditsOutOf(row.Credits, s.Constraints.MaxCredits),
			floorsColumnWidth, format.Floors(row.Floors),
			mark,
		)
	}

	for _, warning := range s.Warnings {
		fmt.Fprintf(&b, "warning kind=%s %s\n", warning.Kind, warning.Message)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FloorTable renders the per-floor catalog overview.
func FloorTable(cat *catalog.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s %-*s %s\n",
		floorColumnWidth, "floor",
		roomsColumnWidth, "rooms",
		"credits",
	)
	for _, summary := range cat.FloorSummaries() {
		fmt.Fprintf(&b, "%-*d %-*d %s\n",
			floorColumnWidth, summary.Floor,
			roomsColumnWidth, summary.RoomCount,
			format.Credits(summary.TotalCredits),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RoomTable renders a room listing with wildcard and combined marks.
func RoomTable(rooms []catalog.Room, cat *catalog.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s %-*s %-*s %s\n",
		roomColumnWidth, "room",
		floorColumnWidth, "floor",
		creditsColumnWidth, "credits",
		"marks",
	)
	for _, room := range rooms {
		marks := []string{}
		if cat.IsWildcard(room.Number) {
			marks = append(marks, "wildcard")
		}
		if room.Combined {
			marks = append(marks, "combined")
		}
		fmt.Fprintf(&b, "%-*s %-*d %-*s %s\n",
			roomColumnWidth, room.Number,
			floorColumnWidth, room.Floor,
			creditsColumnWidth, format.Credits(room.Credits),
			strings.Join(marks, ","),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// TeamTable renders the team catalog listing.
func TeamTable(cat *catalog.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s %-*s %-*s %s\n",
		teamColumnWidth, "team",
		nameColumnWidth, "name",
		marksColumnWidth, "zone-size",
		"color",
	)
	for _, team := range cat.Teams {
		fmt.Fprintf(&b, "%-*s %-*s %-*d %s\n",
			teamColumnWidth, team.ID,
			nameColumnWidth, team.Name,
			marksColumnWidth, len(team.FixedRooms),
			team.Color,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}
