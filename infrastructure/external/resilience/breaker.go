package resilience

import (
	"sync"
	"time"

	"ordersvc/pkg/logger"

	"go.uber.org/zap"
)

// Breaker is a consecutive-failure circuit breaker. After the configured
// number of unavailable failures in a row it opens and rejects calls until
// the cooldown elapses; the first call after cooldown probes the service
// and a success closes the breaker again.
type Breaker struct {
	mu        sync.Mutex
	name      string
	threshold int
	cooldown  time.Duration
	enabled   bool

	consecutiveFailures int
	openUntil           time.Time
}

// NewBreaker creates a breaker for one service.
func NewBreaker(name string, cfg Config) *Breaker {
	return &Breaker{
		name:      name,
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.Cooldown,
		enabled:   cfg.BreakerEnabled && cfg.FailureThreshold > 0,
	}
}

// Allow reports whether a call may proceed.
func (b *Breaker) Allow() bool {
	if b == nil || !b.enabled {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Now().After(b.openUntil)
}

// RecordSuccess closes the breaker.
func (b *Breaker) RecordSuccess() {
	if b == nil || !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consecutiveFailures = 0
	b.openUntil = time.Time{}
}

// RecordFailure counts an unavailable failure and opens the breaker when
// the threshold is reached.
func (b *Breaker) RecordFailure() {
	if b == nil || !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFailures++
	if b.consecutiveFailures >= b.threshold {
		b.openUntil = time.Now().Add(b.cooldown)
		b.consecutiveFailures = 0
		logger.Warn("Circuit breaker opened",
			zap.String("service", b.name),
			zap.Duration("cooldown", b.cooldown),
		)
	}
}
