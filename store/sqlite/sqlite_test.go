package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/calendar"
	"github.com/warp/attendance-engine/data"
	"github.com/warp/attendance-engine/store/sqlite"
)

func date(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSnapshot(t *testing.T) sqlite.Snapshot {
	t.Helper()
	badges := &data.BadgeData{}
	badges.Add(data.BadgeEntry{Date: date(t, "2026-03-02"), Office: "McLean, VA", BadgedIn: true})
	badges.Add(data.BadgeEntry{Date: date(t, "2026-03-03"), Office: "Flex Credit", BadgedIn: true, FlexCredit: true})
	badges.Add(data.BadgeEntry{Date: date(t, "2026-04-06"), Office: "McLean, VA", BadgedIn: true})

	events := &data.EventData{}
	events.Add(data.Event{Date: date(t, "2026-03-02"), Description: "team onsite"})
	events.Add(data.Event{Date: date(t, "2026-03-10"), Description: "dentist"})

	holidays := &data.HolidayData{}
	holidays.Add(data.Holiday{Name: "Memorial Day", Date: date(t, "2026-05-25")})

	vacations := &data.VacationData{}
	vacations.Add(data.Vacation{Destination: "Outer Banks", Start: date(t, "2026-06-01"), End: date(t, "2026-06-05"), Approved: true})

	return sqlite.Snapshot{Badges: badges, Events: events, Holidays: holidays, Vacations: vacations}
}

func TestExportAndQueryByPeriod(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Export(ctx, sampleSnapshot(t)))

	march := calendar.Period{Start: date(t, "2026-03-01"), End: date(t, "2026-03-31")}
	entries, err := store.BadgeEntries(ctx, march)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "McLean, VA", entries[0].Office)
	assert.True(t, entries[1].FlexCredit)

	events, err := store.Events(ctx, march)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "team onsite", events[0].Description)
}

func TestExportReplacesPriorContents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Export(ctx, sampleSnapshot(t)))

	// a second export with one badge entry must not accumulate
	badges := &data.BadgeData{}
	badges.Add(data.BadgeEntry{Date: date(t, "2026-07-06"), Office: "McLean, VA", BadgedIn: true})
	require.NoError(t, store.Export(ctx, sqlite.Snapshot{Badges: badges}))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["badge_entries"])
	assert.Equal(t, 0, counts["events"])
	assert.Equal(t, 0, counts["holidays"])
	assert.Equal(t, 0, counts["vacations"])
}

func TestExportNilCollectionsMeansEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Export(ctx, sqlite.Snapshot{}))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	for table, n := range counts {
		assert.Zero(t, n, table)
	}
}

func TestCountsAfterExport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Export(ctx, sampleSnapshot(t)))

	counts, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts["badge_entries"])
	assert.Equal(t, 2, counts["events"])
	assert.Equal(t, 1, counts["holidays"])
	assert.Equal(t, 1, counts["vacations"])
}

func TestQueryOutsideArchivedRangeIsEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Export(ctx, sampleSnapshot(t)))

	december := calendar.Period{Start: date(t, "2026-12-01"), End: date(t, "2026-12-31")}
	entries, err := store.BadgeEntries(ctx, december)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
