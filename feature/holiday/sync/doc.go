// Package sync orchestrates bulk holiday loads: the one-time historical
// bootstrap and the periodic all-country refresh, both fanned out over a
// bounded worker pool.
package sync
