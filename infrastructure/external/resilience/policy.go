// Package resilience wraps the external service clients with bounded
// retries and a consecutive-failure circuit breaker. Only ErrUnavailable
// is retried; not-found and rejections are final answers and pass through
// on the first attempt.
package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"ordersvc/config"
	"ordersvc/domain/external"
	"ordersvc/pkg/logger"

	"go.uber.org/zap"
)

// Config tunes the retry and breaker behavior of one wrapped client.
type Config struct {
	RetryEnabled   bool
	MaxAttempts    int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	BackoffFactor  float64
	JitterEnabled  bool
	BreakerEnabled bool
	// FailureThreshold consecutive unavailable failures open the breaker
	FailureThreshold int
	// Cooldown is how long the breaker stays open before the next probe
	Cooldown time.Duration
}

// DefaultConfig is the standard policy.
var DefaultConfig = Config{
	RetryEnabled:     true,
	MaxAttempts:      3,
	InitialDelay:     100 * time.Millisecond,
	MaxDelay:         2 * time.Second,
	BackoffFactor:    2.0,
	JitterEnabled:    true,
	BreakerEnabled:   true,
	FailureThreshold: 5,
	Cooldown:         30 * time.Second,
}

// FromAppConfig builds the policy from application configuration.
func FromAppConfig(ext *config.ExternalConfig) Config {
	return Config{
		RetryEnabled:     ext.Retry.Enabled,
		MaxAttempts:      ext.Retry.MaxAttempts,
		InitialDelay:     ext.Retry.InitialDelay,
		MaxDelay:         ext.Retry.MaxDelay,
		BackoffFactor:    ext.Retry.BackoffFactor,
		JitterEnabled:    ext.Retry.JitterEnabled,
		BreakerEnabled:   ext.CircuitBreaker.Enabled,
		FailureThreshold: ext.CircuitBreaker.FailureThreshold,
		Cooldown:         ext.CircuitBreaker.Cooldown,
	}
}

// ExponentialBackoffWithJitter computes the delay before the given attempt.
// Jitter spreads delays over 80% to 120% of the nominal value.
func ExponentialBackoffWithJitter(attempt int, cfg Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.BackoffFactor, float64(attempt-1))
	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	if cfg.JitterEnabled {
		jitterFactor := 0.8 + rand.Float64()*0.4
		delay = delay * jitterFactor
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// isRetryable reports whether the failure is transient. Business answers
// (not found, rejected) never retry.
func isRetryable(err error) bool {
	return errors.Is(err, external.ErrUnavailable)
}

// Do runs fn under the policy: the breaker is consulted first, then fn is
// attempted up to MaxAttempts times with backoff between transient
// failures. Every outcome is reported to the breaker.
func Do[T any](ctx context.Context, policy Config, breaker *Breaker, service string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if !breaker.Allow() {
		logger.Warn("Circuit breaker open, rejecting call", zap.String("service", service))
		return zero, external.ErrUnavailable
	}

	maxAttempts := policy.MaxAttempts
	if !policy.RetryEnabled || maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn(ctx)
		if err == nil {
			breaker.RecordSuccess()
			return result, nil
		}

		lastErr = err
		if !isRetryable(err) {
			// A definitive answer from the service, not an outage
			breaker.RecordSuccess()
			return zero, err
		}

		breaker.RecordFailure()
		if attempt == maxAttempts || !breaker.Allow() {
			break
		}

		delay := ExponentialBackoffWithJitter(attempt, policy)
		logger.Warn("External call failed, retrying",
			zap.String("service", service),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			}
		}
	}

	return zero, lastErr
}
