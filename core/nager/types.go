package nager

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date as serialized by the Nager.Date API (YYYY-MM-DD).
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON parses the API's YYYY-MM-DD representation.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON renders the date back to YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// Country is one entry of GET /AvailableCountries.
type Country struct {
	CountryCode string `json:"countryCode"`
	Name        string `json:"name"`
}

// Holiday is one entry of GET /PublicHolidays/{year}/{countryCode}.
// The source exposes no stable identifier; within one (country, year) a
// holiday is identified by its (date, name) pair.
type Holiday struct {
	Date        Date     `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Fixed       bool     `json:"fixed"`
	Global      bool     `json:"global"`
	Counties    []string `json:"counties"`
	LaunchYear  *int     `json:"launchYear"`
	Types       []string `json:"types"`
}
