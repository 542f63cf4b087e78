/*
main.go - Application entry point

PURPOSE:
  Runs the office attendance tracker. Without a subcommand it opens the
  interactive calendar; subcommands cover the scriptable paths.

COMMAND-LINE FLAGS:
  -data-dir  Directory holding the tracking files (default: ./config)

SUBCOMMANDS:
  (none)     Open the interactive calendar
  init       Create a starter data directory for the current year
  stats      Print the quarter and year summary
             [quarter-key]  a configured key, defaults to today's quarter
  vacations  List recorded vacations
  holidays   List recorded holidays
  backup     Commit the data directory to its git repository
             -remote  set the origin remote before pushing
  export     Write the tracking files into a SQLite archive
             -db  archive path (default: attendance.db)

DATA FILES:
  badge_data.json  badged-in days
  events.json      day notes
  vacations.yaml   vacation ranges
  holidays.yaml    company holidays
  config.yaml      quarter catalog and settings

EXAMPLES:
  # First run, seeded data directory plus the calendar
  ./rto

  # Quarter summary for scripts and prompts
  ./rto -data-dir ~/rto stats

  # Hand the history to a spreadsheet
  ./rto export -db ./attendance.db

SEE ALSO:
  - ui/model.go: Interactive program
  - session/session.go: State machine behind the screen
  - data/persistence.go: File formats and location
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/warp/attendance-engine/backup"
	"github.com/warp/attendance-engine/calendar"
	"github.com/warp/attendance-engine/data"
	"github.com/warp/attendance-engine/report"
	"github.com/warp/attendance-engine/session"
	"github.com/warp/attendance-engine/store/sqlite"
	"github.com/warp/attendance-engine/track"
	"github.com/warp/attendance-engine/ui"
)

func main() {
	dataDir := flag.String("data-dir", "./config", "directory holding the tracking files")
	flag.Parse()

	if err := data.SetDataDir(*dataDir); err != nil {
		log.Fatalf("Failed to set data directory: %v", err)
	}

	var err error
	switch flag.Arg(0) {
	case "":
		err = runInteractive(*dataDir)
	case "init":
		err = runInit(*dataDir)
	case "stats":
		err = runStats(flag.Arg(1))
	case "vacations":
		err = runVacations()
	case "holidays":
		err = runHolidays()
	case "backup":
		err = runBackup(*dataDir, flag.Args()[1:])
	case "export":
		err = runExport(flag.Args()[1:])
	default:
		log.Fatalf("Unknown subcommand %q", flag.Arg(0))
	}
	if err != nil {
		log.Fatal(err)
	}
}

// loadCollections reads every tracking file, tolerating absent ones.
func loadCollections() (session.Collections, error) {
	col := session.Collections{
		Config:    &data.Config{},
		Badges:    &data.BadgeData{},
		Events:    &data.EventData{},
		Vacations: &data.VacationData{},
		Holidays:  &data.HolidayData{},
	}
	if err := data.Load(col.Config); err != nil {
		return col, fmt.Errorf("load config: %w", err)
	}
	if err := data.Load(col.Badges); err != nil {
		return col, fmt.Errorf("load badge data: %w", err)
	}
	if err := data.Load(col.Events); err != nil {
		return col, fmt.Errorf("load events: %w", err)
	}
	if err := data.Load(col.Vacations); err != nil {
		return col, fmt.Errorf("load vacations: %w", err)
	}
	if err := data.Load(col.Holidays); err != nil {
		return col, fmt.Errorf("load holidays: %w", err)
	}
	return col, nil
}

func saveCollections(col session.Collections) error {
	if err := data.Save(*col.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := data.Save(*col.Badges); err != nil {
		return fmt.Errorf("save badge data: %w", err)
	}
	if err := data.Save(*col.Events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := data.Save(*col.Vacations); err != nil {
		return fmt.Errorf("save vacations: %w", err)
	}
	if err := data.Save(*col.Holidays); err != nil {
		return fmt.Errorf("save holidays: %w", err)
	}
	return nil
}

// =============================================================================
// SUBCOMMANDS
// =============================================================================

func runInteractive(dir string) error {
	if err := seedIfEmpty(dir); err != nil {
		return err
	}

	col, err := loadCollections()
	if err != nil {
		return err
	}

	s := session.New(col, calendar.Today(), backup.NewGit(), dir)
	if _, err := tea.NewProgram(ui.New(s)).Run(); err != nil {
		return fmt.Errorf("interactive session: %w", err)
	}

	// what-if edits were already rolled back by the session
	return saveCollections(col)
}

// seedIfEmpty writes a starter data directory on first run.
func seedIfEmpty(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		cfg := &data.Config{}
		if err := data.Load(cfg); err != nil {
			return err
		}
		if len(cfg.Quarters) > 0 {
			return nil
		}
	}
	log.Printf("Seeding new data directory at %s", dir)
	return data.Seed(dir, calendar.Today())
}

func runInit(dir string) error {
	cfg := &data.Config{}
	if err := data.Load(cfg); err == nil && len(cfg.Quarters) > 0 {
		return fmt.Errorf("data directory %s already initialized", dir)
	}
	if err := data.Seed(dir, calendar.Today()); err != nil {
		return err
	}
	fmt.Printf("Initialized %s for %d\n", dir, calendar.Today().Year())
	return nil
}

func runStats(quarterKey string) error {
	col, err := loadCollections()
	if err != nil {
		return err
	}

	today := calendar.Today()
	var q data.QuarterConfig
	var ok bool
	if quarterKey != "" {
		if q, ok = col.Config.ByKey(quarterKey); !ok {
			return fmt.Errorf("unknown quarter %q", quarterKey)
		}
	} else if q, ok = col.Config.ByDate(today); !ok {
		return fmt.Errorf("no quarter configured for %s", today)
	}

	stats := track.Calculate(track.Input{
		Key:        q.Key,
		Label:      q.Quarter + " " + q.Year,
		Period:     q.Period(),
		Holidays:   col.Holidays,
		Vacations:  col.Vacations,
		Attendance: col.Badges,
		Today:      today,
	})
	fmt.Print(report.Quarter(stats))

	if year, ok := track.CalculateYear(col.Config, q.Year, col.Holidays, col.Vacations, col.Badges, today); ok {
		fmt.Println()
		fmt.Print(report.Quarter(year))
	}
	return nil
}

func runVacations() error {
	col, err := loadCollections()
	if err != nil {
		return err
	}
	fmt.Print(report.Vacations(col.Vacations))
	return nil
}

func runHolidays() error {
	col, err := loadCollections()
	if err != nil {
		return err
	}
	fmt.Print(report.Holidays(col.Holidays))
	return nil
}

func runBackup(dir string, args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	remote := fs.String("remote", "", "set the origin remote before pushing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	g := backup.NewGit()
	if *remote != "" {
		if err := g.SetRemote(dir, *remote); err != nil {
			return err
		}
	}
	msg, err := g.Backup(dir)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath := fs.String("db", "attendance.db", "SQLite archive path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	col, err := loadCollections()
	if err != nil {
		return err
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Export(ctx, sqlite.Snapshot{
		Badges:    col.Badges,
		Events:    col.Events,
		Holidays:  col.Holidays,
		Vacations: col.Vacations,
	}); err != nil {
		return err
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Archived to %s: %d badge entries, %d events, %d holidays, %d vacations\n",
		*dbPath, counts["badge_entries"], counts["events"], counts["holidays"], counts["vacations"])
	return nil
}
