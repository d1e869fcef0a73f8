package holiday

import (
	"context"
	"fmt"
	"strings"

	"holiday-keeper/feature/holiday/models"

	"gorm.io/gorm"
)

// Search defaults.
const (
	DefaultPageSize  = 10
	DefaultSortType  = "date"
	DefaultSortOrder = "desc"
)

// sortColumns whitelists the sortable fields; anything else falls back to
// the date column so user input never reaches the ORDER BY clause raw.
var sortColumns = map[string]string{
	"date":       "holiday.date",
	"name":       "holiday.name",
	"localName":  "holiday.local_name",
	"local_name": "holiday.local_name",
	"launchYear": "holiday.launch_year",
	"createdAt":  "holiday.created_at",
}

// SearchParams are the filter, sort and page inputs of a holiday search.
// Filters are optional and conjunctive.
type SearchParams struct {
	Year        *int
	CountryCode string
	HolidayType *models.HolidayType
	SortType    string
	SortOrder   string
	Page        int
	Size        int
}

// HolidayView is one search result row, joined with its country.
type HolidayView struct {
	CountryCode string               `json:"countryCode"`
	CountryName string               `json:"countryName"`
	Date        string               `json:"date"`
	LocalName   string               `json:"localName"`
	Name        string               `json:"name"`
	LaunchYear  *int                 `json:"launchYear"`
	Types       []models.HolidayType `json:"types"`
}

// Page is a paginated search result.
type Page struct {
	Page    int           `json:"page"`
	Size    int           `json:"size"`
	Total   int64         `json:"total"`
	Content []HolidayView `json:"content"`
}

// Search translates the parameters into a storage query and returns one
// page of joined holiday views.
func (r *Repository) Search(ctx context.Context, params SearchParams) (*Page, error) {
	if params.Page < 0 {
		params.Page = 0
	}
	if params.Size <= 0 {
		params.Size = DefaultPageSize
	}

	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Model(&models.Holiday{}).
			Joins("JOIN country ON country.country_id = holiday.country_id")
		if params.Year != nil {
			lower, upper := yearBounds(*params.Year)
			q = q.Where("holiday.date >= ? AND holiday.date < ?", lower, upper)
		}
		if params.CountryCode != "" {
			q = q.Where("country.country_code = ?", params.CountryCode)
		}
		if params.HolidayType != nil {
			// containment test against the serialized types array
			q = q.Where("holiday.types_json LIKE ?", `%"`+params.HolidayType.Wire()+`"%`)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count holidays: %w", err)
	}

	var rows []models.Holiday
	err := base().
		Select("holiday.*").
		Order(orderClause(params.SortType, params.SortOrder)).
		Offset(params.Page * params.Size).
		Limit(params.Size).
		Preload("Country").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search holidays: %w", err)
	}

	content := make([]HolidayView, 0, len(rows))
	for _, row := range rows {
		view, err := toView(row)
		if err != nil {
			return nil, err
		}
		content = append(content, view)
	}

	return &Page{
		Page:    params.Page,
		Size:    params.Size,
		Total:   total,
		Content: content,
	}, nil
}

func orderClause(sortType, sortOrder string) string {
	column, ok := sortColumns[sortType]
	if !ok {
		column = sortColumns[DefaultSortType]
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

func toView(row models.Holiday) (HolidayView, error) {
	wire, err := models.UnmarshalList(row.TypesJSON)
	if err != nil {
		return HolidayView{}, err
	}

	view := HolidayView{
		Date:       row.DateString(),
		LocalName:  row.LocalName,
		Name:       row.Name,
		LaunchYear: row.LaunchYear,
		Types:      models.HolidayTypes(wire),
	}
	if row.Country != nil {
		view.CountryCode = row.Country.Code
		view.CountryName = row.Country.Name
	}
	return view, nil
}
