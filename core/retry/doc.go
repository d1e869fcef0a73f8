// Package retry wraps fallible external calls with a fixed retry budget.
//
// Failed attempts are retried immediately, with no backoff; the external
// holiday API is cheap to re-hit and the callers run inside worker pools
// that already bound the request rate. When every attempt fails the caller
// receives an ExhaustedError wrapping the final failure.
//
// The wrapper deliberately never degrades a terminal failure into an empty
// result: feeding an empty list into the reconciliation diff would delete
// every stored holiday for the affected country and year.
package retry
