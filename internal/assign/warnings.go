package assign

import (
	"fmt"

	"github.com/gouvernante/gouvernante/internal/catalog"
)

// WarningKind labels a constraint violation found in a state.
type WarningKind string

// Warning kinds produced by ScanWarnings.
const (
	// WarnUnderMinCredits marks a team below the minimum credit load.
	WarnUnderMinCredits WarningKind = "team_under_min_credits"
	// WarnOverMaxCredits marks a team above the maximum credit load.
	WarnOverMaxCredits WarningKind = "team_over_max_credits"
	// WarnOverFloorSpan marks a team spread over too many floors.
	WarnOverFloorSpan WarningKind = "team_over_floor_span"
	// WarnFloorOvercrowded marks a floor worked by too many teams.
	WarnFloorOvercrowded WarningKind = "floor_over_team_limit"
)

// Warning describes one constraint violation. TeamID is empty for
// floor-level warnings; Floor is zero for team-level ones.
type Warning struct {
	Kind    WarningKind
	TeamID  string
	Floor   int
	Message string
}

// ScanWarnings checks every team and floor of the state against the catalog
// constraints. Violations are expected after manual overrides and after
// best-effort engine runs on short days; they are surfaced for badges, never
// as errors.
func ScanWarnings(st State, cat *catalog.Catalog) []Warning {
	cons := cat.Constraints
	warnings := []Warning{}

	for _, team := range st.Teams {
		if team.TotalCredits < cons.MinCredits {
			warnings = append(warnings, Warning{
				Kind:    WarnUnderMinCredits,
				TeamID:  team.ID,
				Message: fmt.Sprintf("team %s at %v credits, minimum is %v", team.ID, team.TotalCredits, cons.MinCredits),
			})
		}
		if team.TotalCredits > cons.MaxCredits {
			warnings = append(warnings, Warning{
				Kind:    WarnOverMaxCredits,
				TeamID:  team.ID,
				Message: fmt.Sprintf("team %s at %v credits, maximum is %v", team.ID, team.TotalCredits, cons.MaxCredits),
			})
		}
		if len(team.Floors) > cons.MaxFloorsPerTeam {
			warnings = append(warnings, Warning{
				Kind:    WarnOverFloorSpan,
				TeamID:  team.ID,
				Message: fmt.Sprintf("team %s spans %d floors, limit is %d", team.ID, len(team.Floors), cons.MaxFloorsPerTeam),
			})
		}
	}

	for _, floor := range cat.Floors() {
		teamsOnFloor := 0
		for _, team := range st.Teams {
			if containsInt(team.Floors, floor) {
				teamsOnFloor++
			}
		}
		if teamsOnFloor > cons.MaxTeamsPerFloor {
			warnings = append(warnings, Warning{
				Kind:    WarnFloorOvercrowded,
				Floor:   floor,
				Message: fmt.Sprintf("floor %d worked by %d teams, limit is %d", floor, teamsOnFloor, cons.MaxTeamsPerFloor),
			})
		}
	}

	return warnings
}
