package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Country is a holiday-bearing country. Rows are created during bootstrap or
// when a refresh first sees a country; they are never deleted by normal flow.
type Country struct {
	CountryID  string    `gorm:"column:country_id;type:varchar(36);primaryKey" json:"countryId"`
	Code       string    `gorm:"column:country_code;type:varchar(2);not null;uniqueIndex" json:"countryCode"`
	Name       string    `gorm:"column:country_name;type:varchar(100);not null" json:"countryName"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	ModifiedAt time.Time `gorm:"column:modified_at;autoUpdateTime" json:"-"`
}

// TableName overrides the table name.
func (Country) TableName() string { return "country" }

// BeforeCreate assigns the surrogate id.
func (c *Country) BeforeCreate(tx *gorm.DB) error {
	if c.CountryID == "" {
		c.CountryID = uuid.NewString()
	}
	return nil
}

// Holiday is one public holiday of a country. The natural key is
// (country_id, date, name); the external source exposes no identifier, so
// reconciliation relies on that pair within one country and year.
type Holiday struct {
	HolidayID    string         `gorm:"column:holiday_id;type:varchar(36);primaryKey" json:"holidayId"`
	CountryID    string         `gorm:"column:country_id;type:varchar(36);not null;uniqueIndex:ux_holiday_natural,priority:1" json:"-"`
	Date         time.Time      `gorm:"column:date;type:date;not null;uniqueIndex:ux_holiday_natural,priority:2" json:"date"`
	LocalName    string         `gorm:"column:local_name;type:varchar(200);not null" json:"localName"`
	Name         string         `gorm:"column:name;type:varchar(200);not null;uniqueIndex:ux_holiday_natural,priority:3" json:"name"`
	Fixed        bool           `gorm:"column:fixed;not null" json:"fixed"`
	Global       bool           `gorm:"column:global;not null" json:"global"`
	CountiesJSON datatypes.JSON `gorm:"column:counties_json" json:"-"`
	LaunchYear   *int           `gorm:"column:launch_year" json:"launchYear"`
	TypesJSON    datatypes.JSON `gorm:"column:types_json" json:"-"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	ModifiedAt   time.Time      `gorm:"column:modified_at;autoUpdateTime" json:"-"`

	Country *Country `gorm:"foreignKey:CountryID;references:CountryID" json:"-"`
}

// TableName overrides the table name.
func (Holiday) TableName() string { return "holiday" }

// BeforeCreate assigns the surrogate id.
func (h *Holiday) BeforeCreate(tx *gorm.DB) error {
	if h.HolidayID == "" {
		h.HolidayID = uuid.NewString()
	}
	return nil
}

// DateString renders the calendar date the way the external source does.
func (h Holiday) DateString() string {
	return h.Date.Format("2006-01-02")
}
