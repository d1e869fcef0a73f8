package models_test

import (
	"testing"

	"holiday-keeper/feature/holiday/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestParseHolidayType(t *testing.T) {
	tests := []struct {
		in   string
		want models.HolidayType
		ok   bool
	}{
		{"Public", models.TypePublic, true},
		{"PUBLIC", models.TypePublic, true},
		{"public", models.TypePublic, true},
		{" Bank ", models.TypeBank, true},
		{"Observance", models.TypeObservance, true},
		{"Authorities", models.TypeAuthorities, true},
		{"National", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := models.ParseHolidayType(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestHolidayTypes_DropsUnknown(t *testing.T) {
	got := models.HolidayTypes([]string{"Public", "Carnival", "Bank"})
	assert.Equal(t, []models.HolidayType{models.TypePublic, models.TypeBank}, got)

	assert.Nil(t, models.HolidayTypes(nil))
}

func TestTypeLookups(t *testing.T) {
	assert.Equal(t, "Public", models.TypePublic.Wire())
	assert.Equal(t, "Public holiday", models.TypePublic.Label())
	assert.Equal(t, "Observance", models.TypeObservance.Wire())
}

func TestListCodec(t *testing.T) {
	raw, err := models.MarshalList([]string{"US-CA", "US-NY"})
	assert.NoError(t, err)
	assert.Equal(t, `["US-CA","US-NY"]`, string(raw))

	values, err := models.UnmarshalList(raw)
	assert.NoError(t, err)
	assert.Equal(t, []string{"US-CA", "US-NY"}, values)

	// nil lists serialize as JSON null, like the external API sends them
	raw, err = models.MarshalList(nil)
	assert.NoError(t, err)
	assert.Equal(t, `null`, string(raw))

	values, err = models.UnmarshalList(raw)
	assert.NoError(t, err)
	assert.Nil(t, values)

	// empty column reads as no list
	values, err = models.UnmarshalList(nil)
	assert.NoError(t, err)
	assert.Nil(t, values)
}

func TestListCodec_DecodeError(t *testing.T) {
	_, err := models.UnmarshalList(datatypes.JSON(`{"not":"a list"}`))
	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrCodec)
}
