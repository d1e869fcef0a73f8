// Package models defines the persisted entities of the holiday feature.
//
// Country and Holiday map to the 'country' and 'holiday' tables with UUID
// surrogate keys. The holiday table carries a uniqueness constraint on
// (country_id, date, name) — the natural key the reconciliation engine and
// the upsert path both rely on.
//
// Counties and types are stored as serialized JSON text (counties_json,
// types_json) rather than normalized tables; the reconciliation diff
// compares these columns as ordered serialized sequences.
package models
