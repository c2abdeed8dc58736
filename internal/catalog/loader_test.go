// Package catalog provides tests for catalog loading and layering.
package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadEmbeddedDefaults verifies the built-in hotel data loads and has
// the expected shape.
func TestLoadEmbeddedDefaults(t *testing.T) {
	cat, err := Load("", Overrides{}, func(string) {})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(cat.Rooms) != 159 {
		t.Fatalf("rooms = %d, want 159", len(cat.Rooms))
	}
	if len(cat.Teams) != 13 {
		t.Fatalf("teams = %d, want 13", len(cat.Teams))
	}
	cons := cat.Constraints
	if cons.MinCredits != 15.5 || cons.MaxCredits != 17 || cons.MaxFloorsPerTeam != 2 || cons.MaxTeamsPerFloor != 3 {
		t.Fatalf("constraints = %+v", cons)
	}
	if !cat.IsWildcard("705") {
		t.Fatal("room 705 not on the wildcard list")
	}
	if room, ok := cat.Room("310+312"); !ok || !room.Combined || room.Credits != 2.5 {
		t.Fatalf("combined room 310+312 = %+v %v", room, ok)
	}
	if room, ok := cat.Room("900"); !ok || room.Floor != 8 || room.Credits != 4 {
		t.Fatalf("room 900 = %+v %v", room, ok)
	}
}

// TestLoadFileReplacesSections verifies a catalog file replaces exactly the
// sections it carries and leaves the rest on defaults.
func TestLoadFileReplacesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{
  "constraints": {"min_credits": 5, "max_credits": 8, "max_floors_per_team": 1, "max_teams_per_floor": 2},
  "teams": [{"id": "solo", "name": "Solo", "color": "#fff", "fixed_rooms": ["101"]}]
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}

	cat, err := Load(path, Overrides{}, func(string) {})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(cat.Teams) != 1 || cat.Teams[0].ID != "solo" {
		t.Fatalf("teams = %v, want the file's single team", cat.Teams)
	}
	if len(cat.Rooms) != 159 {
		t.Fatalf("rooms = %d, want the defaults kept", len(cat.Rooms))
	}
	if cat.Constraints.MinCredits != 5 || cat.Constraints.MaxCredits != 8 {
		t.Fatalf("constraints = %+v, want the file's values", cat.Constraints)
	}
}

// TestLoadOverridesWinOverFile verifies CLI overrides apply last.
func TestLoadOverridesWinOverFile(t *testing.T) {
	min := 10.0
	maxFloors := 3
	cat, err := Load("", Overrides{MinCredits: &min, MaxFloorsPerTeam: &maxFloors}, func(string) {})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.Constraints.MinCredits != 10 {
		t.Fatalf("min credits = %v, want the override", cat.Constraints.MinCredits)
	}
	if cat.Constraints.MaxFloorsPerTeam != 3 {
		t.Fatalf("max floors = %v, want the override", cat.Constraints.MaxFloorsPerTeam)
	}
	// Untouched values keep their defaults.
	if cat.Constraints.MaxCredits != 17 {
		t.Fatalf("max credits = %v, want the default", cat.Constraints.MaxCredits)
	}
}

// TestLoadRejectsBadFiles verifies missing and malformed catalog files fail.
func TestLoadRejectsBadFiles(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json"), Overrides{}, nil); err == nil {
		t.Fatal("missing file accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"rooms": []} trailing`), 0o644); err != nil {
		t.Fatalf("write catalog file: %v", err)
	}
	if _, err := Load(path, Overrides{}, nil); err == nil {
		t.Fatal("trailing content accepted")
	}
}
