package retry

import (
	"context"
	"time"
)

// SleepFunc suspends the caller between attempts. Tests inject a fake to
// avoid real delays.
type SleepFunc func(ctx context.Context, delay time.Duration) error

// Sleep waits for the given delay or until the context is cancelled.
func Sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// UntilFound runs op up to maxAttempts times with a fixed delay between
// attempts, returning as soon as op reports a result. An op error aborts the
// loop immediately; exhausting all attempts returns found=false with the zero
// value, which callers treat as an expected outcome rather than a failure.
func UntilFound[T any](ctx context.Context, maxAttempts int, delay time.Duration, sleep SleepFunc, op func(ctx context.Context) (T, bool, error)) (T, bool, error) {
	var zero T
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if sleep == nil {
		sleep = Sleep
	}

	for attempt := 1; ; attempt++ {
		result, found, err := op(ctx)
		if err != nil {
			return zero, false, err
		}
		if found {
			return result, true, nil
		}
		if attempt >= maxAttempts {
			return zero, false, nil
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, false, err
		}
	}
}
