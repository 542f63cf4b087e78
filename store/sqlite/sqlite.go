/*
Package sqlite archives tracking data into a SQLite database.

PURPOSE:
  The files under the data directory are the source of truth; they are
  small, human-editable and easy to back up. The SQLite archive exists
  for everything files are bad at: ad-hoc SQL over several years of
  badge history, joins against events, and handing a single .db file to
  a spreadsheet tool.

KEY TABLES:
  badge_entries: one row per badged-in day
  events:        free-form day notes
  holidays:      company holidays
  vacations:     vacation ranges with approval state

EXPORT SEMANTICS:
  Export replaces the archive contents wholesale inside one database
  transaction. The archive mirrors the files at export time; it is not
  an incremental log.

WAL MODE:
  The database is opened with WAL (Write-Ahead Logging) so a reader
  poking at the archive never blocks an export.

USAGE:
  store, err := sqlite.New("./attendance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  err = store.Export(ctx, sqlite.Snapshot{Badges: badges, ...})

SEE ALSO:
  - data: the file records this archive is built from
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/attendance-engine/calendar"
	"github.com/warp/attendance-engine/data"
)

// Store is a SQLite-backed archive of the tracking files.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Snapshot carries the collections one export writes.
type Snapshot struct {
	Badges    *data.BadgeData
	Events    *data.EventData
	Holidays  *data.HolidayData
	Vacations *data.VacationData
}

// New opens the archive at the given path, creating the schema when
// needed. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS badge_entries (
		date TEXT PRIMARY KEY,
		office TEXT NOT NULL,
		badged_in BOOLEAN NOT NULL,
		flex_credit BOOLEAN NOT NULL,
		exported_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_badge_entries_date
		ON badge_entries(date);

	CREATE TABLE IF NOT EXISTS events (
		date TEXT NOT NULL,
		description TEXT NOT NULL,
		exported_at TEXT NOT NULL,
		UNIQUE(date, description)
	);

	CREATE INDEX IF NOT EXISTS idx_events_date
		ON events(date);

	CREATE TABLE IF NOT EXISTS holidays (
		date TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		exported_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vacations (
		destination TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		approved BOOLEAN NOT NULL,
		exported_at TEXT NOT NULL,
		UNIQUE(destination, start_date)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EXPORT
// =============================================================================

// Export replaces the archive with the given snapshot atomically. Nil
// collections are treated as empty.
func (s *Store) Export(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"badge_entries", "events", "holidays", "vacations"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if snap.Badges != nil {
		for _, e := range snap.Badges.Entries {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO badge_entries (date, office, badged_in, flex_credit, exported_at) VALUES (?, ?, ?, ?, ?)",
				e.Date.String(), e.Office, e.BadgedIn, e.FlexCredit, now,
			)
			if err != nil {
				return fmt.Errorf("failed to archive badge entry %s: %w", e.Date, err)
			}
		}
	}

	if snap.Events != nil {
		for _, e := range snap.Events.Events {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO events (date, description, exported_at) VALUES (?, ?, ?)",
				e.Date.String(), e.Description, now,
			)
			if err != nil {
				return fmt.Errorf("failed to archive event %s: %w", e.Date, err)
			}
		}
	}

	if snap.Holidays != nil {
		for _, h := range snap.Holidays.Holidays {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO holidays (date, name, exported_at) VALUES (?, ?, ?)",
				h.Date.String(), h.Name, now,
			)
			if err != nil {
				return fmt.Errorf("failed to archive holiday %s: %w", h.Date, err)
			}
		}
	}

	if snap.Vacations != nil {
		for _, v := range snap.Vacations.Vacations {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO vacations (destination, start_date, end_date, approved, exported_at) VALUES (?, ?, ?, ?, ?)",
				v.Destination, v.Start.String(), v.End.String(), v.Approved, now,
			)
			if err != nil {
				return fmt.Errorf("failed to archive vacation %q: %w", v.Destination, err)
			}
		}
	}

	return tx.Commit()
}

// =============================================================================
// QUERIES
// =============================================================================

// BadgeEntries returns archived entries inside the period in date order.
func (s *Store) BadgeEntries(ctx context.Context, p calendar.Period) ([]data.BadgeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, office, badged_in, flex_credit
		 FROM badge_entries
		 WHERE date >= ? AND date <= ?
		 ORDER BY date ASC`,
		p.Start.String(), p.End.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query badge entries: %w", err)
	}
	defer rows.Close()

	var entries []data.BadgeEntry
	for rows.Next() {
		var e data.BadgeEntry
		var dateStr string
		if err := rows.Scan(&dateStr, &e.Office, &e.BadgedIn, &e.FlexCredit); err != nil {
			return nil, fmt.Errorf("failed to scan badge entry: %w", err)
		}
		if e.Date, err = calendar.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("corrupt badge entry date %q: %w", dateStr, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Events returns archived events inside the period in date order.
func (s *Store) Events(ctx context.Context, p calendar.Period) ([]data.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, description
		 FROM events
		 WHERE date >= ? AND date <= ?
		 ORDER BY date ASC, description ASC`,
		p.Start.String(), p.End.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []data.Event
	for rows.Next() {
		var e data.Event
		var dateStr string
		if err := rows.Scan(&dateStr, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if e.Date, err = calendar.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("corrupt event date %q: %w", dateStr, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Counts reports how many rows each table holds, keyed by table name.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, table := range []string{"badge_entries", "events", "holidays", "vacations"} {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
