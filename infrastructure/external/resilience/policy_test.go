package resilience

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ordersvc/domain/external"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		RetryEnabled:     true,
		MaxAttempts:      3,
		InitialDelay:     time.Millisecond,
		MaxDelay:         5 * time.Millisecond,
		BackoffFactor:    2.0,
		JitterEnabled:    false,
		BreakerEnabled:   true,
		FailureThreshold: 3,
		Cooldown:         50 * time.Millisecond,
	}
}

func TestDoRetriesTransientFailures(t *testing.T) {
	cfg := testConfig()
	breaker := NewBreaker("test", cfg)

	calls := 0
	result, err := Do(context.Background(), cfg, breaker, "test", func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", fmt.Errorf("boom: %w", external.ErrUnavailable)
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestDoGivesUpAfterMaxAttempts(t *testing.T) {
	cfg := testConfig()
	breaker := NewBreaker("test", cfg)

	calls := 0
	_, err := Do(context.Background(), cfg, breaker, "test", func(ctx context.Context) (string, error) {
		calls++
		return "", fmt.Errorf("boom: %w", external.ErrUnavailable)
	})

	require.ErrorIs(t, err, external.ErrUnavailable)
	assert.Equal(t, 3, calls)
}

func TestDoDoesNotRetryBusinessFailures(t *testing.T) {
	cfg := testConfig()
	breaker := NewBreaker("test", cfg)

	for _, sentinel := range []error{external.ErrNotFound, external.ErrRejected} {
		calls := 0
		_, err := Do(context.Background(), cfg, breaker, "test", func(ctx context.Context) (string, error) {
			calls++
			return "", fmt.Errorf("answer: %w", sentinel)
		})

		require.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, calls, "business failures must not be retried")
	}
}

func TestDoRespectsDisabledRetry(t *testing.T) {
	cfg := testConfig()
	cfg.RetryEnabled = false
	breaker := NewBreaker("test", cfg)

	calls := 0
	_, err := Do(context.Background(), cfg, breaker, "test", func(ctx context.Context) (string, error) {
		calls++
		return "", fmt.Errorf("boom: %w", external.ErrUnavailable)
	})

	require.ErrorIs(t, err, external.ErrUnavailable)
	assert.Equal(t, 1, calls)
}

func TestDoCancelledContext(t *testing.T) {
	cfg := testConfig()
	breaker := NewBreaker("test", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do(ctx, cfg, breaker, "test", func(ctx context.Context) (string, error) {
		return "", fmt.Errorf("boom: %w", external.ErrUnavailable)
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cfg := testConfig()
	breaker := NewBreaker("test", cfg)

	for i := 0; i < cfg.FailureThreshold; i++ {
		require.True(t, breaker.Allow())
		breaker.RecordFailure()
	}

	assert.False(t, breaker.Allow(), "breaker should be open after threshold failures")
}

func TestBreakerClosesAfterCooldown(t *testing.T) {
	cfg := testConfig()
	cfg.Cooldown = 10 * time.Millisecond
	breaker := NewBreaker("test", cfg)

	for i := 0; i < cfg.FailureThreshold; i++ {
		breaker.RecordFailure()
	}
	require.False(t, breaker.Allow())

	time.Sleep(15 * time.Millisecond)
	assert.True(t, breaker.Allow(), "breaker should allow a probe after cooldown")
}

func TestBreakerResetOnSuccess(t *testing.T) {
	cfg := testConfig()
	breaker := NewBreaker("test", cfg)

	breaker.RecordFailure()
	breaker.RecordFailure()
	breaker.RecordSuccess()

	// The failure run was interrupted, so the threshold starts over
	breaker.RecordFailure()
	breaker.RecordFailure()
	assert.True(t, breaker.Allow())
}

func TestDoShortCircuitsWhenBreakerOpen(t *testing.T) {
	cfg := testConfig()
	breaker := NewBreaker("test", cfg)
	for i := 0; i < cfg.FailureThreshold; i++ {
		breaker.RecordFailure()
	}

	calls := 0
	_, err := Do(context.Background(), cfg, breaker, "test", func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.ErrorIs(t, err, external.ErrUnavailable)
	assert.Zero(t, calls, "open breaker must reject without calling the service")
}

func TestExponentialBackoff(t *testing.T) {
	cfg := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: false,
	}

	assert.Equal(t, time.Duration(0), ExponentialBackoffWithJitter(0, cfg))
	assert.Equal(t, 100*time.Millisecond, ExponentialBackoffWithJitter(1, cfg))
	assert.Equal(t, 200*time.Millisecond, ExponentialBackoffWithJitter(2, cfg))
	assert.Equal(t, 400*time.Millisecond, ExponentialBackoffWithJitter(3, cfg))
	assert.Equal(t, 2*time.Second, ExponentialBackoffWithJitter(10, cfg), "delay is capped at MaxDelay")
}

func TestExponentialBackoffJitterRange(t *testing.T) {
	cfg := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}

	for i := 0; i < 50; i++ {
		delay := ExponentialBackoffWithJitter(1, cfg)
		assert.GreaterOrEqual(t, delay, 80*time.Millisecond)
		assert.LessOrEqual(t, delay, 120*time.Millisecond)
	}
}
