// Package status provides tests for the summary and table renderers.
package status

import (
	"strings"
	"testing"

	"github.com/gouvernante/gouvernante/internal/assign"
	"github.com/gouvernante/gouvernante/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]catalog.Room{
			{Number: "101", Floor: 1, Credits: 1.5},
			{Number: "104", Floor: 1, Credits: 2},
			{Number: "201", Floor: 2, Credits: 1, Combined: true},
		},
		[]catalog.Team{
			{ID: "a", Name: "Team A", Color: "#4ade80", FixedRooms: []string{"101", "104"}},
			{ID: "b", Name: "Team B", Color: "#60a5fa", FixedRooms: []string{"201"}},
		},
		catalog.Constraints{MinCredits: 2, MaxCredits: 4, MaxFloorsPerTeam: 1, MaxTeamsPerFloor: 1},
		[]string{"201"},
		nil,
	)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return cat
}

// TestBuildCounts verifies the derived counts and per-team rows.
func TestBuildCounts(t *testing.T) {
	cat := testCatalog(t)
	st, err := assign.NewState(cat, nil)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	st, err = assign.ToggleRoom(st, cat, "a", "104")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	st, err = assign.SetRoomAvailability(st, cat, "201", false)
	if err != nil {
		t.Fatalf("set availability: %v", err)
	}

	summary := Build(st, cat)

	if summary.AvailableRooms != 1 {
		t.Fatalf("available rooms = %d, want 1", summary.AvailableRooms)
	}
	if summary.AvailableCredits != 1.5 {
		t.Fatalf("available credits = %v, want 1.5", summary.AvailableCredits)
	}
	if summary.AssignedRooms != 1 {
		t.Fatalf("assigned rooms = %d, want 1", summary.AssignedRooms)
	}
	if summary.OutOfService != 1 {
		t.Fatalf("out of service = %d, want 1", summary.OutOfService)
	}
	if len(summary.Rows) != 2 {
		t.Fatalf("rows = %v, want two teams", summary.Rows)
	}
	first := summary.Rows[0]
	if first.ID != "a" || first.Name != "Team A" || first.RoomCount != 1 || first.Credits != 2 {
		t.Fatalf("row a = %+v", first)
	}
	if !first.InRange {
		t.Fatalf("row a = %+v, want in range at 2 credits", first)
	}
	if summary.Rows[1].InRange {
		t.Fatalf("row b = %+v, want out of range with no rooms", summary.Rows[1])
	}
}

// TestSummaryString verifies the rendered layout carries the header, one
// line per team, and the warning lines.
func TestSummaryString(t *testing.T) {
	cat := testCatalog(t)
	st, err := assign.NewState(cat, nil)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	st, err = assign.ToggleRoom(st, cat, "a", "104")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	out := Build(st, cat).String()
	lines := strings.Split(out, "\n")

	if lines[0] != "rooms available=2 assigned=1 out-of-service=0 available-credits=2.5" {
		t.Fatalf("header line = %q", lines[0])
	}
	if lines[1] != "teams active=2 target=2-4 credits" {
		t.Fatalf("target line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "team") {
		t.Fatalf("column header = %q", lines[2])
	}
	rowA := lines[3]
	if !strings.HasPrefix(rowA, "a ") || !strings.Contains(rowA, "2/4") || !strings.HasSuffix(rowA, "ok") {
		t.Fatalf("team a row = %q", rowA)
	}
	rowB := lines[4]
	if !strings.HasPrefix(rowB, "b ") || !strings.HasSuffix(rowB, "out-of-range") {
		t.Fatalf("team b row = %q", rowB)
	}
	warned := false
	for _, line := range lines[5:] {
		if strings.HasPrefix(line, "warning kind=team_under_min_credits") && strings.Contains(line, "team b") {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("output missing the under-minimum warning:\n%s", out)
	}
}

// TestSummaryStringNoTeams verifies the empty-round message.
func TestSummaryStringNoTeams(t *testing.T) {
	cat := testCatalog(t)
	st, err := assign.NewState(cat, nil)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	st.Teams = nil

	out := Build(st, cat).String()
	if !strings.HasSuffix(out, "no active teams; nothing to assign") {
		t.Fatalf("output = %q", out)
	}
}

// TestFloorTable verifies the per-floor overview.
func TestFloorTable(t *testing.T) {
	cat := testCatalog(t)
	out := FloorTable(cat)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("output = %q, want header plus two floors", out)
	}
	if !strings.HasPrefix(lines[1], "1") || !strings.HasSuffix(lines[1], "3.5") {
		t.Fatalf("floor 1 line = %q", lines[1])
	}
}

// TestRoomTable verifies wildcard and combined marks.
func TestRoomTable(t *testing.T) {
	cat := testCatalog(t)
	out := RoomTable(cat.Rooms, cat)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("output = %q, want header plus three rooms", out)
	}
	marked := lines[3]
	if !strings.HasPrefix(marked, "201") || !strings.HasSuffix(marked, "wildcard,combined") {
		t.Fatalf("room 201 line = %q", marked)
	}
	plain := lines[1]
	if !strings.HasPrefix(plain, "101") || strings.Contains(plain, "wildcard") {
		t.Fatalf("room 101 line = %q", plain)
	}
}

// TestTeamTable verifies the team listing.
func TestTeamTable(t *testing.T) {
	cat := testCatalog(t)
	out := TeamTable(cat)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("output = %q, want header plus two teams", out)
	}
	if !strings.HasPrefix(lines[1], "a ") || !strings.HasSuffix(lines[1], "#4ade80") {
		t.Fatalf("team a line = %q", lines[1])
	}
}
