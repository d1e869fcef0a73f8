package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

// ErrCodec matches any failure while encoding or decoding the counties and
// types collections for storage. These failures are fatal in the write path:
// silently dropping either collection would corrupt the reconciliation diff.
var ErrCodec = errors.New("holiday list codec failure")

// MarshalList serializes a string list for the counties_json/types_json
// columns. A nil list serializes as JSON null, mirroring the external API.
func MarshalList(values []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrCodec, err)
	}
	return datatypes.JSON(raw), nil
}

// UnmarshalList restores a string list from its stored representation.
func UnmarshalList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: decode %q: %v", ErrCodec, string(raw), err)
	}
	return values, nil
}
