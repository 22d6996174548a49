package mcpserver

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// RateLimiter is a token bucket refilled one token per refillInterval.
type RateLimiter struct {
	mu             sync.Mutex
	clock          clockwork.Clock
	tokens         int
	maxTokens      int
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewRateLimiter allows a burst of maxTokens and then one call per refillInterval.
func NewRateLimiter(clock clockwork.Clock, maxTokens int, refillInterval time.Duration) *RateLimiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RateLimiter{
		clock:          clock,
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillInterval: refillInterval,
		lastRefill:     clock.Now(),
	}
}

// PerMinute spreads perMinute calls evenly across a minute.
func PerMinute(clock clockwork.Clock, perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return NewRateLimiter(clock, perMinute, time.Minute/time.Duration(perMinute))
}

// Allow takes a token if one is available.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill()
	if r.tokens > 0 {
		r.tokens--
		return true
	}
	return false
}

func (r *RateLimiter) refill() {
	elapsed := r.clock.Since(r.lastRefill)
	newTokens := int(elapsed / r.refillInterval)
	if newTokens > 0 {
		r.tokens += newTokens
		if r.tokens > r.maxTokens {
			r.tokens = r.maxTokens
		}
		r.lastRefill = r.lastRefill.Add(time.Duration(newTokens) * r.refillInterval)
	}
}
