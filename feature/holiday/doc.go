// Package holiday stores public holidays fetched from the Nager.Date API
// and keeps them in sync: a reconciliation-based refresh per (country,
// year), a filtered search endpoint, and scope deletes. Bulk operations
// live in the sync subpackage, the diff itself in reconcile.
package holiday
