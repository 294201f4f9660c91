package ratelimit

import (
	"sync"
	"time"
)

// Limiter defines the interface for pacing requests
type Limiter interface {
	// Allow checks if a request is allowed right now
	Allow() bool
	// Wait blocks until the limiter allows another request
	Wait()
	// Reset resets the limiter state
	Reset()
}

// FixedInterval enforces a fixed pause between consecutive requests. It is
// the politeness pacer used between image downloads: the first request
// passes immediately, every later one waits out the remainder of the
// interval since the previous request.
type FixedInterval struct {
	interval time.Duration
	last     time.Time
	mu       sync.Mutex
}

// NewFixedInterval creates a fixed-interval pacer
func NewFixedInterval(interval time.Duration) *FixedInterval {
	return &FixedInterval{interval: interval}
}

// Allow reports whether the interval since the last request has elapsed,
// consuming the slot when it has.
func (f *FixedInterval) Allow() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	if f.last.IsZero() || now.Sub(f.last) >= f.interval {
		f.last = now
		return true
	}
	return false
}

// Wait blocks until the interval has elapsed, then consumes the slot
func (f *FixedInterval) Wait() {
	for {
		f.mu.Lock()
		now := time.Now()
		if f.last.IsZero() || now.Sub(f.last) >= f.interval {
			f.last = now
			f.mu.Unlock()
			return
		}
		remaining := f.interval - now.Sub(f.last)
		f.mu.Unlock()
		time.Sleep(remaining)
	}
}

// Reset clears the last-request timestamp
func (f *FixedInterval) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = time.Time{}
}

// TokenBucket implements a token bucket rate limiter, available for
// request-per-minute pacing when configured.
type TokenBucket struct {
	capacity     int           // Maximum number of tokens
	tokens       int           // Current number of tokens
	refillPeriod time.Duration // Period after which bucket is refilled
	lastRefill   time.Time     // Last time the bucket was refilled
	mu           sync.Mutex
}

// NewTokenBucket creates a new token bucket rate limiter
func NewTokenBucket(capacity int, refillPeriod time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:     capacity,
		tokens:       capacity,
		refillPeriod: refillPeriod,
		lastRefill:   time.Now(),
	}
}

// Allow checks if a request can proceed
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

// Wait blocks until a token is available
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

// Reset resets the token bucket to full capacity
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastRefill = time.Now()
}

// refill adds tokens based on elapsed time
func (tb *TokenBucket) refill() {
	now := time.Now()
	if now.Sub(tb.lastRefill) >= tb.refillPeriod {
		tb.tokens = tb.capacity
		tb.lastRefill = now
	}
}
