package retry

import (
	"context"
	"errors"
	"fmt"
)

// ErrExhausted matches any error returned after the retry budget ran out.
// Use errors.Is to detect terminal external failures.
var ErrExhausted = errors.New("retry budget exhausted")

// ExhaustedError is the terminal failure returned once every attempt failed.
// It wraps the error of the last attempt.
type ExhaustedError struct {
	// Attempts is the total number of attempts performed.
	Attempts int
	// Err is the failure of the final attempt.
	Err error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry budget exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrExhausted) true for exhausted errors.
func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

// Do executes op up to attempts times, retrying immediately on failure.
// The successful result is returned as soon as one attempt succeeds. Once
// the budget is exhausted the caller gets an *ExhaustedError; there is no
// empty-value fallback, so downstream reconciliation can never mistake a
// terminal failure for a genuinely empty result.
//
// Context cancellation is checked between attempts and aborts with ctx.Err.
func Do[T any](ctx context.Context, attempts int, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return zero, &ExhaustedError{Attempts: attempts, Err: lastErr}
}
