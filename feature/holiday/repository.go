package holiday

import (
	"context"
	"fmt"
	"time"

	"holiday-keeper/core/nager"
	"holiday-keeper/feature/holiday/models"
	"holiday-keeper/feature/holiday/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultBatchSize bounds one batched write statement.
const DefaultBatchSize = 500

// Repository is the storage layer of the holiday feature. All bulk
// operations apply their input in chunks of at most batchSize rows and are
// no-ops on empty input.
type Repository struct {
	db        *gorm.DB
	batchSize int
}

// NewRepository creates a repository with the given write chunk size.
func NewRepository(db *gorm.DB, batchSize int) *Repository {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Repository{db: db, batchSize: batchSize}
}

// Migrate creates or updates the feature's tables.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&models.Country{}, &models.Holiday{})
}

// BulkInsertCountries inserts countries, refreshing the name of rows whose
// code already exists. Country rows are never deleted by normal flow.
func (r *Repository) BulkInsertCountries(ctx context.Context, countries []nager.Country) error {
	if len(countries) == 0 {
		return nil
	}

	rows := make([]models.Country, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, models.Country{Code: c.CountryCode, Name: c.Name})
	}

	for _, chunk := range chunked(rows, r.batchSize) {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "country_code"}},
				DoUpdates: clause.AssignmentColumns([]string{"country_name"}),
			}).
			Create(&chunk).Error
		if err != nil {
			return fmt.Errorf("bulk insert countries: %w", err)
		}
	}
	return nil
}

// UpsertHolidays writes fetched records for one country using
// insert-or-overwrite semantics keyed on (country_id, date, name), so
// re-running the same insert is idempotent.
func (r *Repository) UpsertHolidays(ctx context.Context, countryID string, holidays []nager.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}

	rows := make([]models.Holiday, 0, len(holidays))
	for _, h := range holidays {
		row, err := toRow(countryID, h)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	for _, chunk := range chunked(rows, r.batchSize) {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "country_id"}, {Name: "date"}, {Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"local_name", "fixed", "global", "counties_json", "launch_year", "types_json", "modified_at",
				}),
			}).
			Create(&chunk).Error
		if err != nil {
			return fmt.Errorf("upsert holidays: %w", err)
		}
	}
	return nil
}

// UpdateHolidays writes exactly the mutable fields of each persisted row,
// plus the modification timestamp. Each chunk commits in one transaction.
func (r *Repository) UpdateHolidays(ctx context.Context, updates []reconcile.Update) error {
	if len(updates) == 0 {
		return nil
	}

	for _, chunk := range chunked(updates, r.batchSize) {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			for _, u := range chunk {
				counties, err := models.MarshalList(u.Desired.Counties)
				if err != nil {
					return err
				}
				types, err := models.MarshalList(u.Desired.Types)
				if err != nil {
					return err
				}

				res := tx.Model(&models.Holiday{}).
					Where("holiday_id = ?", u.Current.HolidayID).
					Updates(map[string]any{
						"date":          u.Desired.Date.Time,
						"local_name":    u.Desired.LocalName,
						"name":          u.Desired.Name,
						"fixed":         u.Desired.Fixed,
						"global":        u.Desired.Global,
						"counties_json": counties,
						"launch_year":   u.Desired.LaunchYear,
						"types_json":    types,
						"modified_at":   now,
					})
				if res.Error != nil {
					return res.Error
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("update holidays: %w", err)
		}
	}
	return nil
}

// DeleteHolidays removes persisted rows by id. Deletion is hard: after it,
// the (country, date, name) key no longer resolves anywhere.
func (r *Repository) DeleteHolidays(ctx context.Context, holidays []models.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}

	ids := make([]string, 0, len(holidays))
	for _, h := range holidays {
		ids = append(ids, h.HolidayID)
	}

	for _, chunk := range chunked(ids, r.batchSize) {
		err := r.db.WithContext(ctx).
			Where("holiday_id IN ?", chunk).
			Delete(&models.Holiday{}).Error
		if err != nil {
			return fmt.Errorf("delete holidays: %w", err)
		}
	}
	return nil
}

// DeleteByCountryYear removes every holiday of one country and year and
// returns the number of removed rows.
func (r *Repository) DeleteByCountryYear(ctx context.Context, countryCode string, year int) (int64, error) {
	country, err := r.CountryByCode(ctx, countryCode)
	if err != nil {
		return 0, err
	}
	if country == nil {
		return 0, nil
	}

	lower, upper := yearBounds(year)
	res := r.db.WithContext(ctx).
		Where("country_id = ? AND date >= ? AND date < ?", country.CountryID, lower, upper).
		Delete(&models.Holiday{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete holidays %s/%d: %w", countryCode, year, res.Error)
	}
	return res.RowsAffected, nil
}

// CountryByCode returns the country with the given code, or nil when the
// code is unknown.
func (r *Repository) CountryByCode(ctx context.Context, code string) (*models.Country, error) {
	var country models.Country
	err := r.db.WithContext(ctx).Where("country_code = ?", code).First(&country).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup country %s: %w", code, err)
	}
	return &country, nil
}

// EnsureCountry returns the country with the given code, creating a row on
// first sight. A country first seen through a manual refresh gets its code
// as name until a bootstrap or scheduled run fills in the real one.
func (r *Repository) EnsureCountry(ctx context.Context, code string) (*models.Country, error) {
	country, err := r.CountryByCode(ctx, code)
	if err != nil || country != nil {
		return country, err
	}

	if err := r.BulkInsertCountries(ctx, []nager.Country{{CountryCode: code, Name: code}}); err != nil {
		return nil, err
	}
	return r.CountryByCode(ctx, code)
}

// CountryIDsByCode returns the code -> surrogate id mapping of every
// persisted country.
func (r *Repository) CountryIDsByCode(ctx context.Context) (map[string]string, error) {
	var countries []models.Country
	if err := r.db.WithContext(ctx).Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	ids := make(map[string]string, len(countries))
	for _, c := range countries {
		ids[c.Code] = c.CountryID
	}
	return ids, nil
}

// CountCountries returns the number of persisted countries.
func (r *Repository) CountCountries(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Country{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count countries: %w", err)
	}
	return count, nil
}

// HolidaysForCountryYear loads the persisted snapshot the reconciliation
// engine diffs against.
func (r *Repository) HolidaysForCountryYear(ctx context.Context, countryID string, year int) ([]models.Holiday, error) {
	lower, upper := yearBounds(year)
	var holidays []models.Holiday
	err := r.db.WithContext(ctx).
		Where("country_id = ? AND date >= ? AND date < ?", countryID, lower, upper).
		Find(&holidays).Error
	if err != nil {
		return nil, fmt.Errorf("load holidays %s/%d: %w", countryID, year, err)
	}
	return holidays, nil
}

func yearBounds(year int) (time.Time, time.Time) {
	lower := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return lower, lower.AddDate(1, 0, 0)
}

// chunked splits rows into consecutive chunks of at most size elements.
func chunked[T any](rows []T, size int) [][]T {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var chunks [][]T
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}

// toRow converts a fetched record into a persisted row for countryID.
func toRow(countryID string, h nager.Holiday) (models.Holiday, error) {
	counties, err := models.MarshalList(h.Counties)
	if err != nil {
		return models.Holiday{}, err
	}
	types, err := models.MarshalList(h.Types)
	if err != nil {
		return models.Holiday{}, err
	}

	return models.Holiday{
		CountryID:    countryID,
		Date:         h.Date.Time,
		LocalName:    h.LocalName,
		Name:         h.Name,
		Fixed:        h.Fixed,
		Global:       h.Global,
		CountiesJSON: counties,
		LaunchYear:   h.LaunchYear,
		TypesJSON:    types,
	}, nil
}
