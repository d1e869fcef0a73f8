package holiday

import (
	"context"
	"testing"
	"time"

	"holiday-keeper/core/database"
	"holiday-keeper/core/nager"
	"holiday-keeper/feature/holiday/models"
	"holiday-keeper/feature/holiday/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	require.NoError(t, err)

	repo := NewRepository(db, DefaultBatchSize)
	require.NoError(t, repo.Migrate())
	return repo
}

func fetchedRow(name string, month time.Month, day int) nager.Holiday {
	return nager.Holiday{
		Date:      nager.NewDate(2025, month, day),
		LocalName: name,
		Name:      name,
		Fixed:     true,
		Global:    true,
		Types:     []string{"Public"},
	}
}

func TestUpsertHolidaysIdempotent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	country, err := repo.EnsureCountry(ctx, "KR")
	require.NoError(t, err)

	rows := []nager.Holiday{
		fetchedRow("New Year's Day", time.January, 1),
		fetchedRow("Christmas Day", time.December, 25),
	}
	require.NoError(t, repo.UpsertHolidays(ctx, country.CountryID, rows))

	// second pass with one changed field must overwrite, not duplicate
	rows[1].LocalName = "크리스마스"
	require.NoError(t, repo.UpsertHolidays(ctx, country.CountryID, rows))

	stored, err := repo.HolidaysForCountryYear(ctx, country.CountryID, 2025)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	byName := map[string]models.Holiday{}
	for _, h := range stored {
		byName[h.Name] = h
	}
	assert.Equal(t, "크리스마스", byName["Christmas Day"].LocalName)
}

func TestUpdateAndDeleteHolidays(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	country, err := repo.EnsureCountry(ctx, "US")
	require.NoError(t, err)

	require.NoError(t, repo.UpsertHolidays(ctx, country.CountryID, []nager.Holiday{
		fetchedRow("Independence Day", time.July, 4),
		fetchedRow("Labor Day", time.September, 1),
	}))

	stored, err := repo.HolidaysForCountryYear(ctx, country.CountryID, 2025)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	var target models.Holiday
	for _, h := range stored {
		if h.Name == "Independence Day" {
			target = h
		}
	}

	launchYear := 1776
	desired := fetchedRow("Independence Day", time.July, 4)
	desired.Fixed = false
	desired.LaunchYear = &launchYear
	require.NoError(t, repo.UpdateHolidays(ctx, []reconcile.Update{
		{Current: target, Desired: desired},
	}))

	stored, err = repo.HolidaysForCountryYear(ctx, country.CountryID, 2025)
	require.NoError(t, err)
	for _, h := range stored {
		if h.Name == "Independence Day" {
			assert.False(t, h.Fixed)
			require.NotNil(t, h.LaunchYear)
			assert.Equal(t, 1776, *h.LaunchYear)
		}
	}

	require.NoError(t, repo.DeleteHolidays(ctx, []models.Holiday{target}))
	stored, err = repo.HolidaysForCountryYear(ctx, country.CountryID, 2025)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Labor Day", stored[0].Name)
}

func TestEnsureCountryCreatesOnce(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first, err := repo.EnsureCountry(ctx, "DE")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "DE", first.Name) // code stands in for the name

	second, err := repo.EnsureCountry(ctx, "DE")
	require.NoError(t, err)
	assert.Equal(t, first.CountryID, second.CountryID)

	// bootstrap fills in the real name without duplicating the row
	require.NoError(t, repo.BulkInsertCountries(ctx, []nager.Country{
		{CountryCode: "DE", Name: "Germany"},
	}))
	count, err := repo.CountCountries(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	refreshed, err := repo.CountryByCode(ctx, "DE")
	require.NoError(t, err)
	assert.Equal(t, "Germany", refreshed.Name)
}

func TestDeleteByCountryYear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	country, err := repo.EnsureCountry(ctx, "KR")
	require.NoError(t, err)
	require.NoError(t, repo.UpsertHolidays(ctx, country.CountryID, []nager.Holiday{
		fetchedRow("New Year's Day", time.January, 1),
		fetchedRow("Christmas Day", time.December, 25),
	}))

	deleted, err := repo.DeleteByCountryYear(ctx, "KR", 2025)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	stored, err := repo.HolidaysForCountryYear(ctx, country.CountryID, 2025)
	require.NoError(t, err)
	assert.Empty(t, stored)

	// unknown country is a no-op, not an error
	deleted, err = repo.DeleteByCountryYear(ctx, "XX", 2025)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func setupMockRepo(t *testing.T, batchSize int) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return NewRepository(gormDB, batchSize), mock
}

func TestUpsertHolidaysChunksWrites(t *testing.T) {
	repo, mock := setupMockRepo(t, 2)

	rows := []nager.Holiday{
		fetchedRow("a", time.January, 1),
		fetchedRow("b", time.January, 2),
		fetchedRow("c", time.January, 3),
		fetchedRow("d", time.January, 4),
		fetchedRow("e", time.January, 5),
	}

	// 5 rows at batch size 2 -> 3 statements
	for _, n := range []int{2, 2, 1} {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `holiday`").
			WillReturnResult(sqlmock.NewResult(0, int64(n)))
		mock.ExpectCommit()
	}

	err := repo.UpsertHolidays(context.Background(), "country-1", rows)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
