// Package assign implements the room-assignment engine and the mutable
// session state it operates on.
package assign

import (
	"sort"

	"github.com/gouvernante/gouvernante/internal/catalog"
)

// Stats aggregates the workload of a set of assigned rooms.
type Stats struct {
	TotalCredits float64
	Floors       []int
	RoomCount    int
}

// Compute derives the stats for a sequence of room numbers. Numbers that do
// not resolve in the catalog contribute nothing; they are treated as stale
// references, not errors.
func Compute(roomNumbers []string, cat *catalog.Catalog) Stats {
	stats := Stats{RoomCount: len(roomNumbers)}
	seen := map[int]bool{}
	for _, number := range roomNumbers {
		room, ok := cat.Room(number)
		if !ok {
			continue
		}
		stats.TotalCredits += room.Credits
		if !seen[room.Floor] {
			seen[room.Floor] = true
			stats.Floors = append(stats.Floors, room.Floor)
		}
	}
	sort.Ints(stats.Floors)
	return stats
}

// FloorSpan returns the number of distinct floors the stats cover.
func (s Stats) FloorSpan() int {
	return len(s.Floors)
}
