package models

import "strings"

// HolidayType is the closed enumeration of holiday categories.
type HolidayType string

const (
	TypePublic      HolidayType = "PUBLIC"
	TypeBank        HolidayType = "BANK"
	TypeSchool      HolidayType = "SCHOOL"
	TypeAuthorities HolidayType = "AUTHORITIES"
	TypeOptional    HolidayType = "OPTIONAL"
	TypeObservance  HolidayType = "OBSERVANCE"
)

// typeWire maps each type to the string the external API uses inside the
// types array. Presentation metadata stays out of the domain type.
var typeWire = map[HolidayType]string{
	TypePublic:      "Public",
	TypeBank:        "Bank",
	TypeSchool:      "School",
	TypeAuthorities: "Authorities",
	TypeOptional:    "Optional",
	TypeObservance:  "Observance",
}

// typeLabels is the display metadata lookup, separate from the enum itself.
var typeLabels = map[HolidayType]string{
	TypePublic:      "Public holiday",
	TypeBank:        "Bank holiday",
	TypeSchool:      "School holiday",
	TypeAuthorities: "Authorities closed",
	TypeOptional:    "Optional holiday",
	TypeObservance:  "Observance",
}

// ParseHolidayType matches a type case-insensitively against the closed set.
func ParseHolidayType(s string) (HolidayType, bool) {
	t := HolidayType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := typeWire[t]; !ok {
		return "", false
	}
	return t, true
}

// Wire returns the external API spelling of the type.
func (t HolidayType) Wire() string {
	return typeWire[t]
}

// Label returns the human-readable description of the type.
func (t HolidayType) Label() string {
	return typeLabels[t]
}

// HolidayTypes converts the wire strings of a types array into the closed
// enumeration, dropping values outside the known set.
func HolidayTypes(wire []string) []HolidayType {
	if len(wire) == 0 {
		return nil
	}
	out := make([]HolidayType, 0, len(wire))
	for _, s := range wire {
		if t, ok := ParseHolidayType(s); ok {
			out = append(out, t)
		}
	}
	return out
}
