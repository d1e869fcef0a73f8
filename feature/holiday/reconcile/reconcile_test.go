package reconcile_test

import (
	"testing"
	"time"

	"holiday-keeper/core/nager"
	"holiday-keeper/feature/holiday/models"
	"holiday-keeper/feature/holiday/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchedHoliday(date, name string, mutate ...func(*nager.Holiday)) nager.Holiday {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	h := nager.Holiday{
		Date:        nager.Date{Time: t},
		LocalName:   name,
		Name:        name,
		CountryCode: "KR",
		Fixed:       true,
		Global:      true,
		Types:       []string{"Public"},
	}
	for _, m := range mutate {
		m(&h)
	}
	return h
}

func storedHoliday(t *testing.T, date, name string, mutate ...func(*models.Holiday)) models.Holiday {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	types, err := models.MarshalList([]string{"Public"})
	require.NoError(t, err)
	counties, err := models.MarshalList(nil)
	require.NoError(t, err)

	h := models.Holiday{
		HolidayID:    "id-" + date + "-" + name,
		CountryID:    "country-kr",
		Date:         day,
		LocalName:    name,
		Name:         name,
		Fixed:        true,
		Global:       true,
		CountiesJSON: counties,
		TypesJSON:    types,
	}
	for _, m := range mutate {
		m(&h)
	}
	return h
}

func TestDiff_Partition(t *testing.T) {
	fetched := []nager.Holiday{
		fetchedHoliday("2025-01-01", "New Year's Day"),
		fetchedHoliday("2025-05-01", "Workers Day"),
		fetchedHoliday("2025-12-25", "Christmas Day"),
	}
	persisted := []models.Holiday{
		storedHoliday(t, "2025-01-01", "New Year's Day"), // unchanged -> neither
		storedHoliday(t, "2025-05-01", "Workers Day", func(h *models.Holiday) {
			h.Global = false // changed -> update
		}),
		storedHoliday(t, "2025-08-15", "Liberation Day"), // gone -> delete
	}

	plan := reconcile.Diff(fetched, persisted)

	// keys(fetched) \ keys(persisted) == inserts
	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, "Christmas Day", plan.Inserts[0].Name)

	// intersection with a non-empty field diff == updates
	require.Len(t, plan.Updates, 1)
	assert.Equal(t, "Workers Day", plan.Updates[0].Current.Name)

	// keys(persisted) \ keys(fetched) == deletes
	require.Len(t, plan.Deletes, 1)
	assert.Equal(t, "Liberation Day", plan.Deletes[0].Name)

	// no key appears in more than one set
	seen := map[reconcile.Key]int{}
	for _, h := range plan.Inserts {
		seen[reconcile.KeyOf(h)]++
	}
	for _, u := range plan.Updates {
		seen[reconcile.KeyOfStored(u.Current)]++
	}
	for _, h := range plan.Deletes {
		seen[reconcile.KeyOfStored(h)]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "key %v assigned to multiple partitions", k)
	}
}

func TestDiff_IdenticalSnapshotsAreIdempotent(t *testing.T) {
	fetched := []nager.Holiday{
		fetchedHoliday("2025-01-01", "New Year's Day"),
		fetchedHoliday("2025-05-01", "Workers Day"),
	}
	persisted := []models.Holiday{
		storedHoliday(t, "2025-01-01", "New Year's Day"),
		storedHoliday(t, "2025-05-01", "Workers Day"),
	}

	plan := reconcile.Diff(fetched, persisted)
	assert.True(t, plan.Empty())
	assert.Equal(t, reconcile.Summary{}, plan.Summary())
}

func TestDiff_EmptyFetchedDeletesEverything(t *testing.T) {
	// Full-replacement semantics: the fetched side is authoritative.
	persisted := []models.Holiday{
		storedHoliday(t, "2025-01-01", "New Year's Day"),
		storedHoliday(t, "2025-03-01", "Independence Movement Day"),
		storedHoliday(t, "2025-05-05", "Children's Day"),
	}

	plan := reconcile.Diff(nil, persisted)

	assert.Empty(t, plan.Inserts)
	assert.Empty(t, plan.Updates)
	assert.Len(t, plan.Deletes, len(persisted))
}

func TestDiff_EmptyPersistedInsertsEverything(t *testing.T) {
	fetched := []nager.Holiday{
		fetchedHoliday("2025-01-01", "New Year's Day"),
		fetchedHoliday("2025-05-01", "Workers Day"),
	}

	plan := reconcile.Diff(fetched, nil)

	assert.Len(t, plan.Inserts, 2)
	assert.Empty(t, plan.Updates)
	assert.Empty(t, plan.Deletes)
}

func TestDiff_UpdateScenario(t *testing.T) {
	// Persisted fixed=true; fetched fixed=false with launchYear 1520.
	launch := 1520
	fetched := []nager.Holiday{
		fetchedHoliday("2025-01-01", "New Year's Day", func(h *nager.Holiday) {
			h.Fixed = false
			h.LaunchYear = &launch
		}),
	}
	persisted := []models.Holiday{
		storedHoliday(t, "2025-01-01", "New Year's Day"),
	}

	plan := reconcile.Diff(fetched, persisted)

	require.Len(t, plan.Updates, 1)
	assert.Empty(t, plan.Inserts)
	assert.Empty(t, plan.Deletes)
	assert.False(t, plan.Updates[0].Desired.Fixed)
	assert.Equal(t, 1520, *plan.Updates[0].Desired.LaunchYear)
}

func TestDiff_DeleteScenario(t *testing.T) {
	fetched := []nager.Holiday{
		fetchedHoliday("2025-01-01", "New Year's Day"),
	}
	persisted := []models.Holiday{
		storedHoliday(t, "2025-01-01", "New Year's Day"),
		storedHoliday(t, "2025-05-01", "Workers Day"),
	}

	plan := reconcile.Diff(fetched, persisted)

	require.Len(t, plan.Deletes, 1)
	assert.Equal(t, "Workers Day", plan.Deletes[0].Name)
	assert.Equal(t, "2025-05-01", plan.Deletes[0].DateString())
	assert.Empty(t, plan.Inserts)
	assert.Empty(t, plan.Updates)
}

func TestDiff_ListOrderIsSignificant(t *testing.T) {
	// Reordered counties without content change still count as a change.
	fetched := []nager.Holiday{
		fetchedHoliday("2025-07-04", "Independence Day", func(h *nager.Holiday) {
			h.Counties = []string{"US-NY", "US-CA"}
		}),
	}
	persisted := []models.Holiday{
		storedHoliday(t, "2025-07-04", "Independence Day", func(h *models.Holiday) {
			counties, err := models.MarshalList([]string{"US-CA", "US-NY"})
			require.NoError(t, err)
			h.CountiesJSON = counties
		}),
	}

	plan := reconcile.Diff(fetched, persisted)
	assert.Len(t, plan.Updates, 1)
}

func TestDiff_NilCountiesEqualsUnsetColumn(t *testing.T) {
	fetched := []nager.Holiday{
		fetchedHoliday("2025-01-01", "New Year's Day"),
	}
	persisted := []models.Holiday{
		storedHoliday(t, "2025-01-01", "New Year's Day", func(h *models.Holiday) {
			h.CountiesJSON = nil
		}),
	}

	plan := reconcile.Diff(fetched, persisted)
	assert.True(t, plan.Empty())
}

func TestDiff_DuplicateFetchedKeysCollapse(t *testing.T) {
	fetched := []nager.Holiday{
		fetchedHoliday("2025-01-01", "New Year's Day"),
		fetchedHoliday("2025-01-01", "New Year's Day", func(h *nager.Holiday) {
			h.LocalName = "last wins"
		}),
	}

	plan := reconcile.Diff(fetched, nil)

	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, "last wins", plan.Inserts[0].LocalName)
}
