// Package export builds the printable assignment workbook.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gouvernante/gouvernante/internal/assign"
	"github.com/gouvernante/gouvernante/internal/catalog"
	"github.com/gouvernante/gouvernante/internal/format"
)

const (
	teamsSheet = "Teams"
	roomsSheet = "Rooms"
)

var teamsHeader = []string{"Team", "Name", "Rooms", "Credits", "Floors", "Room Numbers"}

var roomsHeader = []string{"Room", "Floor", "Credits", "Team", "Status"}

// Workbook renders the assignment state into a two-sheet workbook: a team
// sheet for the housekeeping office and a per-room sheet for the floor
// runners. The caller owns the returned file and must Close or SaveAs it.
func Workbook(st assign.State, cat *catalog.Catalog) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", teamsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(roomsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet %s: %w", roomsSheet, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeHeader(f, teamsSheet, teamsHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeHeader(f, roomsSheet, roomsHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for i, team := range st.Teams {
		name := team.ID
		if catTeam, ok := cat.Team(team.ID); ok {
			name = catTeam.Name
		}
		numbers := append([]string(nil), team.AssignedRooms...)
		sort.Strings(numbers)
		row := i + 2
		values := []any{
			team.ID,
			name,
			len(team.AssignedRooms),
			team.TotalCredits,
			format.Floors(team.Floors),
			strings.Join(numbers, " "),
		}
		if err := writeRow(f, teamsSheet, row, values); err != nil {
			f.Close()
			return nil, err
		}
	}

	for i, room := range cat.Rooms {
		holder, held := st.Assignee(room.Number)
		state := "available"
		switch {
		case held:
			state = "assigned"
		case st.OutOfService[room.Number]:
			state = "out-of-service"
		case !st.IsAvailable(room.Number):
			state = "inactive"
		}
		row := i + 2
		values := []any{room.Number, room.Floor, room.Credits, holder, state}
		if err := writeRow(f, roomsSheet, row, values); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// writeHeader writes and styles the first row of a sheet.
func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("set header style %s: %w", cell, err)
		}
	}
	return nil
}

// writeRow writes one row of values starting at column A.
func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
