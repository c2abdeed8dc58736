// Command gouvernante assigns hotel rooms to housekeeping teams for the day
// and lets the manager inspect and override the result.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gouvernante/gouvernante/internal/assign"
	"github.com/gouvernante/gouvernante/internal/buildinfo"
	"github.com/gouvernante/gouvernante/internal/catalog"
	"github.com/gouvernante/gouvernante/internal/export"
	"github.com/gouvernante/gouvernante/internal/oplog"
	"github.com/gouvernante/gouvernante/internal/status"
	"github.com/gouvernante/gouvernante/internal/tui"
)

const usage = `gouvernante - housekeeping room assignment board

USAGE:
    gouvernante <command> [command options]

COMMANDS:
    assign      Run the auto-assign engine once and print the day's board
    board       Open the interactive assignment board
    rooms       List catalog rooms with filters
    floors      Show the per-floor catalog overview
    teams       List the housekeeping teams
    version     Print version and build information

Run 'gouvernante <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := os.Args[1]
	commandArgs := os.Args[2:]

	switch command {
	case "assign":
		runAssign(commandArgs)
	case "board":
		runBoard(commandArgs)
	case "rooms":
		runRooms(commandArgs)
	case "floors":
		runFloors(commandArgs)
	case "teams":
		runTeams(commandArgs)
	case "version":
		fmt.Println(buildinfo.String())
	case "-h", "--help", "help":
		fmt.Fprint(os.Stderr, usage)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "gouvernante: unknown command %q\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

// catalogFlags registers the shared catalog and constraint-override flags.
type catalogFlags struct {
	flags         *flag.FlagSet
	path          *string
	minCredits    *float64
	maxCredits    *float64
	maxFloors     *int
	teamsPerFloor *int
}

// registerCatalogFlags attaches the catalog flags to the given flag set.
func registerCatalogFlags(flags *flag.FlagSet) *catalogFlags {
	return &catalogFlags{
		flags:         flags,
		path:          flags.String("catalog", "", "Path to a catalog JSON file (default: built-in hotel)"),
		minCredits:    flags.Float64("min-credits", 0, "Override the per-team minimum credits"),
		maxCredits:    flags.Float64("max-credits", 0, "Override the per-team maximum credits"),
		maxFloors:     flags.Int("max-floors", 0, "Override the per-team floor-span limit"),
		teamsPerFloor: flags.Int("teams-per-floor", 0, "Override the per-floor team limit"),
	}
}

// load resolves the catalog, applying only the overrides that were set.
func (cf *catalogFlags) load() (*catalog.Catalog, error) {
	overrides := catalog.Overrides{}
	cf.flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-credits":
			overrides.MinCredits = cf.minCredits
		case "max-credits":
			overrides.MaxCredits = cf.maxCredits
		case "max-floors":
			overrides.MaxFloorsPerTeam = cf.maxFloors
		case "teams-per-floor":
			overrides.MaxTeamsPerFloor = cf.teamsPerFloor
		}
	})
	return catalog.Load(*cf.path, overrides, func(msg string) {
		fmt.Fprintln(os.Stderr, "warning: "+msg)
	})
}

// splitTeamIDs parses a comma-separated team id list.
func splitTeamIDs(value string) []string {
	if value == "" {
		return nil
	}
	ids := []string{}
	for _, id := range strings.Split(value, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// shuffleFor returns a seeded shuffle, or nil for time-seeded behavior.
func shuffleFor(seed int64) func([]catalog.Room) {
	if seed == 0 {
		return nil
	}
	return assign.SeededShuffle(seed)
}

// loggerFor opens the operation log when a path was given.
func loggerFor(path string) (*oplog.Logger, error) {
	if path == "" {
		return nil, nil
	}
	return oplog.NewLogger(path, os.Stderr)
}

func runAssign(args []string) {
	flags := flag.NewFlagSet("assign", flag.ExitOnError)
	cf := registerCatalogFlags(flags)
	teamList := flags.String("teams", "", "Comma-separated team ids to activate (default: all)")
	seed := flags.Int64("seed", 0, "Seed for the backfill shuffle (0: time-seeded)")
	xlsxPath := flags.String("xlsx", "", "Write the assignment workbook to this path")
	opsPath := flags.String("ops", "", "Append operations to this log file")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, `USAGE:
    gouvernante assign [options]

DESCRIPTION:
    Build a fresh assignment state for the selected teams, run the
    three-phase auto-assign engine once, and print the resulting board.
    Teams left outside the credit target and rooms left unassigned are
    reported as warnings, not errors.

OPTIONS:
`)
		flags.PrintDefaults()
	}
	flags.Parse(args)

	if flags.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "gouvernante assign: unexpected arguments\n\n")
		flags.Usage()
		os.Exit(2)
	}

	cat, err := cf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	st, err := assign.NewState(cat, splitTeamIDs(*teamList))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	result := assign.AutoAssign(st, cat, assign.Options{Shuffle: shuffleFor(*seed)})

	logger, err := loggerFor(*opsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if logger != nil {
		if err := logger.LogAssignRun(result.RunID, len(result.State.Teams), result.State.AssignedRoomCount(), len(result.State.Available), len(result.Warnings)); err != nil {
			os.Exit(1)
		}
	}

	if *xlsxPath != "" {
		workbook, err := export.Workbook(result.State, cat)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		if err := workbook.SaveAs(*xlsxPath); err != nil {
			workbook.Close()
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		workbook.Close()
	}

	fmt.Println(status.Build(result.State, cat).String())
}

func runBoard(args []string) {
	flags := flag.NewFlagSet("board", flag.ExitOnError)
	cf := registerCatalogFlags(flags)
	teamList := flags.String("teams", "", "Comma-separated team ids to activate (default: all)")
	seed := flags.Int64("seed", 0, "Seed for the backfill shuffle (0: time-seeded)")
	opsPath := flags.String("ops", "", "Append operations to this log file")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, `USAGE:
    gouvernante board [options]

DESCRIPTION:
    Open the interactive assignment board. Auto-assign, reset, manual
    per-room toggles, and room service-state edits all happen live; teams
    outside the credit or floor limits are flagged, never blocked.

OPTIONS:
`)
		flags.PrintDefaults()
	}
	flags.Parse(args)

	if flags.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "gouvernante board: unexpected arguments\n\n")
		flags.Usage()
		os.Exit(2)
	}

	cat, err := cf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	st, err := assign.NewState(cat, splitTeamIDs(*teamList))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	logger, err := loggerFor(*opsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := tui.Run(cat, st, shuffleFor(*seed), logger); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func runRooms(args []string) {
	flags := flag.NewFlagSet("rooms", flag.ExitOnError)
	cf := registerCatalogFlags(flags)
	floor := flags.Int("floor", 0, "Only rooms on this floor (0: all floors)")
	sortKey := flags.String("sort", "number", "Sort key: number, floor, or credits")
	search := flags.String("search", "", "Only rooms whose number contains this substring")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, `USAGE:
    gouvernante rooms [options]

DESCRIPTION:
    List the catalog rooms with optional floor, search, and sort filters.
    Wildcard and combined rooms are marked.

OPTIONS:
`)
		flags.PrintDefaults()
	}
	flags.Parse(args)

	if flags.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "gouvernante rooms: unexpected arguments\n\n")
		flags.Usage()
		os.Exit(2)
	}

	switch *sortKey {
	case "number", "floor", "credits":
	default:
		fmt.Fprintf(os.Stderr, "gouvernante rooms: unknown sort key %q\n", *sortKey)
		os.Exit(2)
	}

	cat, err := cf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	rooms := cat.FilterRooms(*floor, *search)
	catalog.SortRooms(rooms, *sortKey)
	fmt.Println(status.RoomTable(rooms, cat))
}

func runFloors(args []string) {
	flags := flag.NewFlagSet("floors", flag.ExitOnError)
	cf := registerCatalogFlags(flags)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, `USAGE:
    gouvernante floors [options]

DESCRIPTION:
    Show the per-floor room and credit totals of the catalog.

OPTIONS:
`)
		flags.PrintDefaults()
	}
	flags.Parse(args)

	if flags.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "gouvernante floors: unexpected arguments\n\n")
		flags.Usage()
		os.Exit(2)
	}

	cat, err := cf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Println(status.FloorTable(cat))
}

func runTeams(args []string) {
	flags := flag.NewFlagSet("teams", flag.ExitOnError)
	cf := registerCatalogFlags(flags)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, `USAGE:
    gouvernante teams [options]

DESCRIPTION:
    List the housekeeping teams with their fixed-zone sizes.

OPTIONS:
`)
		flags.PrintDefaults()
	}
	flags.Parse(args)

	if flags.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "gouvernante teams: unexpected arguments\n\n")
		flags.Usage()
		os.Exit(2)
	}

	cat, err := cf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Println(status.TeamTable(cat))
}
