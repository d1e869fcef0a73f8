package reconcile

import (
	"encoding/json"

	"holiday-keeper/core/nager"
	"holiday-keeper/feature/holiday/models"
)

// Key identifies a holiday within one (country, year). The external source
// exposes no identifier, so (date, name) is the stable identity.
type Key struct {
	Date string
	Name string
}

// KeyOf returns the reconciliation key of a fetched record.
func KeyOf(h nager.Holiday) Key {
	return Key{Date: h.Date.String(), Name: h.Name}
}

// KeyOfStored returns the reconciliation key of a persisted row.
func KeyOfStored(h models.Holiday) Key {
	return Key{Date: h.DateString(), Name: h.Name}
}

// Update pairs a persisted row with the fetched record it must be updated to.
type Update struct {
	Current models.Holiday
	Desired nager.Holiday
}

// Plan partitions the key union of a fetched and a persisted snapshot.
// Every key lands in exactly one of the three sets (or in none, when the
// record exists on both sides and no field differs).
type Plan struct {
	Inserts []nager.Holiday
	Updates []Update
	Deletes []models.Holiday
}

// Empty reports whether the plan requires no writes.
func (p Plan) Empty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0 && len(p.Deletes) == 0
}

// Summary counts the applied partitions of a plan.
type Summary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
}

// Summary returns the partition sizes of the plan.
func (p Plan) Summary() Summary {
	return Summary{
		Inserted: len(p.Inserts),
		Updated:  len(p.Updates),
		Deleted:  len(p.Deletes),
	}
}

// Diff computes the minimal insert/update/delete partitions that turn the
// persisted snapshot into the fetched one. Both inputs must already be
// restricted to a single country and year.
//
// An empty fetched set yields the full persisted set as deletes: the
// fetched side is authoritative, so callers must never feed it a
// silently-degraded empty result (see core/retry).
func Diff(fetched []nager.Holiday, persisted []models.Holiday) Plan {
	desired := make(map[Key]nager.Holiday, len(fetched))
	order := make([]Key, 0, len(fetched))
	for _, h := range fetched {
		k := KeyOf(h)
		if _, dup := desired[k]; !dup {
			order = append(order, k)
		}
		// last-wins on duplicate keys; the upsert would collapse them anyway
		desired[k] = h
	}

	var plan Plan

	current := make(map[Key]models.Holiday, len(persisted))
	for _, row := range persisted {
		k := KeyOfStored(row)
		current[k] = row
		if _, ok := desired[k]; !ok {
			plan.Deletes = append(plan.Deletes, row)
		}
	}

	for _, k := range order {
		want := desired[k]
		have, ok := current[k]
		if !ok {
			plan.Inserts = append(plan.Inserts, want)
			continue
		}
		if hasChanges(have, want) {
			plan.Updates = append(plan.Updates, Update{Current: have, Desired: want})
		}
	}

	return plan
}

// hasChanges compares every mutable field. Scalar fields compare by
// equality; counties and types compare as serialized ordered sequences, so
// a reorder without content change still counts as a change. A set-based
// comparison would be less sensitive but would not match what the upstream
// actually serializes.
func hasChanges(current models.Holiday, desired nager.Holiday) bool {
	if current.DateString() != desired.Date.String() {
		return true
	}
	if current.LocalName != desired.LocalName {
		return true
	}
	if current.Name != desired.Name {
		return true
	}
	if current.Fixed != desired.Fixed {
		return true
	}
	if current.Global != desired.Global {
		return true
	}
	if !intPtrEqual(current.LaunchYear, desired.LaunchYear) {
		return true
	}
	if !serializedEqual(current.CountiesJSON, desired.Counties) {
		return true
	}
	if !serializedEqual(current.TypesJSON, desired.Types) {
		return true
	}
	return false
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// serializedEqual compares a stored JSON column with the serialization of a
// fetched list. Stored columns are always written via json.Marshal, so the
// byte comparison is exact. Marshaling a string slice cannot fail.
func serializedEqual(stored []byte, fetched []string) bool {
	raw, _ := json.Marshal(fetched)
	if len(stored) == 0 {
		// never-written column equals a nil list
		return string(raw) == "null"
	}
	return string(stored) == string(raw)
}
