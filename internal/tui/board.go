// Package tui provides the interactive assignment board.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/gouvernante/gouvernante/internal/assign"
	"github.com/gouvernante/gouvernante/internal/catalog"
	"github.com/gouvernante/gouvernante/internal/format"
	"github.com/gouvernante/gouvernante/internal/oplog"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginLeft(1)

	countsStyle = lipgloss.NewStyle().
			Bold(true).
			MarginLeft(1).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginLeft(1).
			MarginTop(1)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			MarginLeft(1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			MarginLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			MarginLeft(1)

	promptStyle = lipgloss.NewStyle().
			MarginLeft(1).
			MarginTop(1)
)

// inputMode selects what the text input applies to.
type inputMode int

const (
	modeNone inputMode = iota
	modeToggleRoom
	modeAvailability
)

// Model represents the interactive board state.
type Model struct {
	cat     *catalog.Catalog
	st      assign.State
	shuffle func([]catalog.Room)
	log     *oplog.Logger

	table     table.Model
	input     textinput.Model
	mode      inputMode
	showRooms bool
	message   string
	err       error
	quitting  bool
}

// New creates a board model over the given state. shuffle may be nil for a
// time-seeded engine; log may be nil to disable operation logging.
func New(cat *catalog.Catalog, st assign.State, shuffle func([]catalog.Room), log *oplog.Logger) Model {
	columns := []table.Column{
		{Title: "Team", Width: 12},
		{Title: "Name", Width: 12},
		{Title: "Rooms", Width: 6},
		{Title: "Credits", Width: 10},
		{Title: "Floors", Width: 8},
		{Title: "Status", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("12"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	input := textinput.New()
	input.Placeholder = "room number"
	input.CharLimit = 12
	input.Width = 20

	m := Model{
		cat:     cat,
		st:      st,
		shuffle: shuffle,
		log:     log,
		table:   t,
		input:   input,
	}
	m.refreshRows()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeNone {
			switch msg.String() {
			case "enter":
				m = m.applyInput()
				return m, nil
			case "esc":
				m.mode = modeNone
				m.input.Blur()
				m.input.Reset()
				return m, nil
			}
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "a":
			m = m.autoAssign()
			return m, nil
		case "R":
			m = m.reset()
			return m, nil
		case "t":
			m.mode = modeToggleRoom
			m.input.Reset()
			return m, m.input.Focus()
		case "u":
			m.mode = modeAvailability
			m.input.Reset()
			return m, m.input.Focus()
		case "enter":
			m.showRooms = !m.showRooms
			return m, nil
		}

	case tea.WindowSizeMsg:
		// Reserve space for header, counts, help, and the input prompt.
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Gouvernante Board"))
	b.WriteString("\n\n")

	cons := m.cat.Constraints
	counts := countsStyle.Render(fmt.Sprintf(
		"Teams: %d | Pool: %s | Assigned: %s | Target: %s-%s credits",
		len(m.st.Teams),
		format.Rooms(len(m.st.Available)),
		format.Rooms(m.st.AssignedRoomCount()),
		format.Credits(cons.MinCredits),
		format.Credits(cons.MaxCredits),
	))
	b.WriteString(counts)
	b.WriteString("\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.showRooms {
		b.WriteString(m.selectedTeamDetail())
		b.WriteString("\n")
	}

	for _, warning := range assign.ScanWarnings(m.st, m.cat) {
		b.WriteString(warningStyle.Render("! " + warning.Message))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeToggleRoom:
		b.WriteString(promptStyle.Render("toggle room on " + m.selectedTeamID() + ": " + m.input.View()))
		b.WriteString("\n")
	case modeAvailability:
		b.WriteString(promptStyle.Render("flip room service state: " + m.input.View()))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	help := helpStyle.Render("↑/↓: navigate • a: auto-assign • R: reset • t: toggle room • u: room service • enter: rooms • q: quit")
	b.WriteString(help)

	return b.String()
}

// autoAssign runs the engine over the current state.
func (m Model) autoAssign() Model {
	result := assign.AutoAssign(m.st, m.cat, assign.Options{Shuffle: m.shuffle})
	m.st = result.State
	m.err = nil
	m.message = fmt.Sprintf("assigned %s, %s left over, %d warnings",
		format.Rooms(m.st.AssignedRoomCount()), format.Rooms(len(m.st.Available)), len(result.Warnings))
	if m.log != nil {
		m.log.LogAssignRun(result.RunID, len(m.st.Teams), m.st.AssignedRoomCount(), len(m.st.Available), len(result.Warnings))
	}
	m.refreshRows()
	return m
}

// reset clears every assignment and restores the eligible pool.
func (m Model) reset() Model {
	m.st = assign.Reset(m.st, m.cat)
	m.err = nil
	m.message = "assignments cleared"
	if m.log != nil {
		m.log.LogReset(uuid.NewString(), len(m.st.Available))
	}
	m.refreshRows()
	return m
}

// applyInput consumes the pending text input for the active mode.
func (m Model) applyInput() Model {
	roomNumber := strings.TrimSpace(m.input.Value())
	mode := m.mode
	m.mode = modeNone
	m.input.Blur()
	m.input.Reset()
	if roomNumber == "" {
		return m
	}

	switch mode {
	case modeToggleRoom:
		teamID := m.selectedTeamID()
		if teamID == "" {
			m.err = fmt.Errorf("no team selected")
			return m
		}
		wasAssigned := false
		if team, ok := m.st.Team(teamID); ok {
			for _, number := range team.AssignedRooms {
				if number == roomNumber {
					wasAssigned = true
					break
				}
			}
		}
		next, err := assign.ToggleRoom(m.st, m.cat, teamID, roomNumber)
		if err != nil {
			m.err = err
			return m
		}
		m.st = next
		m.err = nil
		if wasAssigned {
			m.message = fmt.Sprintf("room %s returned to pool", roomNumber)
		} else {
			m.message = fmt.Sprintf("room %s assigned to %s", roomNumber, teamID)
		}
		if m.log != nil {
			m.log.LogRoomToggle(uuid.NewString(), teamID, roomNumber, !wasAssigned)
		}
	case modeAvailability:
		available := m.st.OutOfService[roomNumber]
		next, err := assign.SetRoomAvailability(m.st, m.cat, roomNumber, available)
		if err != nil {
			m.err = err
			return m
		}
		m.st = next
		m.err = nil
		if available {
			m.message = fmt.Sprintf("room %s back in service", roomNumber)
		} else {
			m.message = fmt.Sprintf("room %s out of service", roomNumber)
		}
		if m.log != nil {
			m.log.LogRoomAvailability(uuid.NewString(), roomNumber, available)
		}
	}
	m.refreshRows()
	return m
}

// selectedTeamID returns the id of the team under the cursor.
func (m Model) selectedTeamID() string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.st.Teams) {
		return ""
	}
	return m.st.Teams[cursor].ID
}

// selectedTeamDetail renders the room numbers held by the selected team.
func (m Model) selectedTeamDetail() string {
	teamID := m.selectedTeamID()
	team, ok := m.st.Team(teamID)
	if !ok {
		return ""
	}
	if len(team.AssignedRooms) == 0 {
		return promptStyle.Render(teamID + ": no rooms assigned")
	}
	numbers := append([]string(nil), team.AssignedRooms...)
	sort.Strings(numbers)
	return promptStyle.Render(teamID + ": " + strings.Join(numbers, " "))
}

// refreshRows rebuilds the table rows from the current state.
func (m *Model) refreshRows() {
	cons := m.cat.Constraints
	rows := make([]table.Row, len(m.st.Teams))
	for i, team := range m.st.Teams {
		name := team.ID
		if catTeam, ok := m.cat.Team(team.ID); ok {
			name = catTeam.Name
		}
		mark := "ok"
		if team.TotalCredits < cons.MinCredits ||
			team.TotalCredits > cons.MaxCredits ||
			len(team.Floors) > cons.MaxFloorsPerTeam {
			mark = "out-of-range"
		}
		rows[i] = table.Row{
			team.ID,
			name,
			fmt.Sprintf("%d", len(team.AssignedRooms)),
			format.CreditsOutOf(team.TotalCredits, cons.MaxCredits),
			format.Floors(team.Floors),
			mark,
		}
	}
	m.table.SetRows(rows)
}

// Run starts the interactive board.
func Run(cat *catalog.Catalog, st assign.State, shuffle func([]catalog.Room), log *oplog.Logger) error {
	p := tea.NewProgram(
		New(cat, st, shuffle, log),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
