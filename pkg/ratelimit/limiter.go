package ratelimit

import (
	"sync"
	"time"
)

// Limiter defines the interface for pacing outgoing requests.
type Limiter interface {
	// Wait blocks until the next request may proceed.
	Wait()
	// Reset resets the limiter state.
	Reset()
}

// FixedDelay enforces a constant pause between consecutive requests. This is
// the courtesy delay applied after every search query; there is no adaptive
// backoff.
type FixedDelay struct {
	delay time.Duration
	last  time.Time
	mu    sync.Mutex
}

// NewFixedDelay creates a fixed-delay limiter. A zero or negative delay
// produces a limiter whose Wait never blocks.
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: delay}
}

// Wait sleeps until the configured delay has elapsed since the previous call.
func (f *FixedDelay) Wait() {
	if f.delay <= 0 {
		return
	}

	f.mu.Lock()
	var pause time.Duration
	if !f.last.IsZero() {
		pause = f.delay - time.Since(f.last)
	}
	f.last = time.Now().Add(pause)
	f.mu.Unlock()

	if pause > 0 {
		time.Sleep(pause)
	}
}

// Reset clears the last-request timestamp.
func (f *FixedDelay) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = time.Time{}
}

// TokenBucket implements a token bucket rate limiter refilled in whole
// periods. Used when pacing is configured as requests-per-minute instead of a
// fixed delay.
type TokenBucket struct {
	capacity     int
	tokens       int
	refillPeriod time.Duration
	lastRefill   time.Time
	mu           sync.Mutex
}

// NewTokenBucket creates a new token bucket rate limiter.
func NewTokenBucket(capacity int, refillPeriod time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:     capacity,
		tokens:       capacity,
		refillPeriod: refillPeriod,
		lastRefill:   time.Now(),
	}
}

// Allow checks if a request can proceed without blocking.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}

	return false
}

// Wait blocks until a token is available.
func (tb *TokenBucket) Wait() {
	for !tb.Allow() {
		tb.mu.Lock()
		timeUntilRefill := tb.refillPeriod - time.Since(tb.lastRefill)
		tb.mu.Unlock()

		if timeUntilRefill > 0 {
			time.Sleep(timeUntilRefill)
		} else {
			// Small sleep to prevent busy waiting
			time.Sleep(100 * time.Millisecond)
		}
	}
}

// Reset refills the bucket to capacity.
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastRefill = time.Now()
}

// refill adds tokens based on elapsed time.
func (tb *TokenBucket) refill() {
	now := time.Now()
	if now.Sub(tb.lastRefill) >= tb.refillPeriod {
		tb.tokens = tb.capacity
		tb.lastRefill = now
	}
}

// None is a no-op limiter.
type None struct{}

func (None) Wait()  {}
func (None) Reset() {}
