package devices

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicy_Do(t *testing.T) {
	errTransient := errors.New("transient")
	errFatal := errors.New("fatal")

	tests := []struct {
		name         string
		policy       RetryPolicy
		failures     []error
		wantErr      error
		wantAttempts int
	}{
		{"first try succeeds", DefaultRetryPolicy(), nil, nil, 1},
		{"succeeds on third attempt", DefaultRetryPolicy(), []error{errTransient, errTransient}, nil, 3},
		{"exhausts attempts", DefaultRetryPolicy(), []error{errTransient, errTransient, fmt.Errorf("last: %w", errTransient), errTransient}, errTransient, 3},
		{"zero attempts means one", RetryPolicy{}, []error{errTransient, errTransient}, errTransient, 1},
		{"single attempt fails once", RetryPolicy{MaxAttempts: 1}, []error{errTransient, errTransient}, errTransient, 1},
		{"single attempt succeeds", RetryPolicy{MaxAttempts: 1}, nil, nil, 1},
		{
			"non retryable stops",
			RetryPolicy{MaxAttempts: 5, Retryable: func(err error) bool { return !errors.Is(err, errFatal) }},
			[]error{errTransient, errFatal, errTransient},
			errFatal,
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			var failed []int

			err := tt.policy.Do(context.Background(), func(attempt int) error {
				attempts++
				assert.Equal(t, attempts, attempt)
				if attempt <= len(tt.failures) {
					return tt.failures[attempt-1]
				}
				return nil
			}, func(attempt int, err error) {
				failed = append(failed, attempt)
			})

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantAttempts, attempts)
			if tt.wantErr != nil {
				assert.Len(t, failed, tt.wantAttempts)
			}
		})
	}
}

func TestRetryPolicy_Do_ReturnsLastError(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3}

	err := policy.Do(context.Background(), func(attempt int) error {
		return fmt.Errorf("attempt %d", attempt)
	}, nil)

	require.EqualError(t, err, "attempt 3")
}

func TestRetryPolicy_Do_Delay(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Delay: 10 * time.Millisecond}

	start := time.Now()
	err := policy.Do(context.Background(), func(attempt int) error {
		return errors.New("nope")
	}, nil)

	require.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestRetryPolicy_Do_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxAttempts: 10}

	attempts := 0
	err := policy.Do(ctx, func(attempt int) error {
		attempts++
		cancel()
		return errors.New("cancelled mid flight")
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
