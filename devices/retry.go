package devices

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
)

// DefaultDumpAttempts is how many times a ui dump is tried before giving up.
const DefaultDumpAttempts = 3

// RetryPolicy bounds how an operation is retried.
type RetryPolicy struct {
	// MaxAttempts counts the first try. Values below 1 mean a single try.
	MaxAttempts int
	// Delay between attempts, zero retries immediately.
	Delay time.Duration
	// Retryable decides whether an error is worth another attempt.
	// A nil Retryable retries every error.
	Retryable func(error) bool
}

// DefaultRetryPolicy retries any error up to DefaultDumpAttempts times.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultDumpAttempts}
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff = &backoff.ZeroBackOff{}
	if p.Delay > 0 {
		b = backoff.NewConstantBackOff(p.Delay)
	}
	// WithMaxRetries treats zero as unlimited, so single tries never get here.
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.attempts()-1)), ctx)
}

// Do runs op until it succeeds, a non-retryable error occurs, attempts run
// out or ctx is done. The last error seen is returned. onFailure, when set,
// is called after every failed attempt.
func (p RetryPolicy) Do(ctx context.Context, op func(attempt int) error, onFailure func(attempt int, err error)) error {
	if p.attempts() == 1 {
		err := op(1)
		if err != nil && onFailure != nil {
			onFailure(1, err)
		}
		return err
	}

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := op(attempt)
		if err == nil {
			return nil
		}

		if onFailure != nil {
			onFailure(attempt, err)
		}

		if p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}, p.backOff(ctx))
}
