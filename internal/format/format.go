package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Credits formats a credit value, keeping halves and trimming whole numbers
// (e.g., "1.5", "2").
func Credits(credits float64) string {
	s := strconv.FormatFloat(credits, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// CreditsOutOf formats a credit value against a ceiling (e.g., "16.5/17").
func CreditsOutOf(credits float64, limit float64) string {
	return Credits(credits) + "/" + Credits(limit)
}

// Floors formats a sorted floor list as a comma-joined string (e.g., "1,2").
// Returns "-" for an empty list.
func Floors(floors []int) string {
	if len(floors) == 0 {
		return "-"
	}
	parts := make([]string, len(floors))
	for i, floor := range floors {
		parts[i] = strconv.Itoa(floor)
	}
	return strings.Join(parts, ",")
}

// Rooms formats a room count with its unit (e.g., "1 room", "12 rooms").
func Rooms(count int) string {
	if count == 1 {
		return "1 room"
	}
	return fmt.Sprintf("%d rooms", count)
}
