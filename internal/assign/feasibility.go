package assign

import (
	"github.com/gouvernante/gouvernante/internal/catalog"
)

// FitsTeam reports whether adding the candidate room keeps the team within
// its own ceilings: total credits at or below MaxCredits and the floor span
// at or below MaxFloorsPerTeam.
func FitsTeam(current Stats, room catalog.Room, cons catalog.Constraints) bool {
	if current.TotalCredits+room.Credits > cons.MaxCredits {
		return false
	}
	span := current.FloorSpan()
	if !containsInt(current.Floors, room.Floor) {
		span++
	}
	return span <= cons.MaxFloorsPerTeam
}

// FloorOccupancyOK reports whether the floor stays within MaxTeamsPerFloor
// under the proposed full assignment snapshot. The snapshot must already
// include the candidate addition; the check is global because it depends on
// every team's floor footprint, not just the team being extended.
func FloorOccupancyOK(proposed map[string][]string, floor int, cat *catalog.Catalog, cons catalog.Constraints) bool {
	teamsOnFloor := 0
	for _, roomNumbers := range proposed {
		for _, number := range roomNumbers {
			room, ok := cat.Room(number)
			if !ok {
				continue
			}
			if room.Floor == floor {
				teamsOnFloor++
				break
			}
		}
	}
	return teamsOnFloor <= cons.MaxTeamsPerFloor
}

// containsInt reports whether the slice holds the value.
func containsInt(values []int, value int) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
