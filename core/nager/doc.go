// Package nager is the typed client for the Nager.Date public holiday API.
//
// The API is a read-only, unauthenticated JSON source exposing two
// endpoints this application consumes:
//
//	GET /AvailableCountries              -> []Country
//	GET /PublicHolidays/{year}/{code}    -> []Holiday
//
// Every transport failure and every non-2xx status is reported as an error;
// classification into transient vs terminal happens in the retry wrapper
// that callers put around these methods.
//
// Each request carries a client-level timeout so a hanging upstream cannot
// stall a sync worker indefinitely.
package nager
