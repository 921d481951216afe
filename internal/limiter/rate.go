package limiter

import (
	"context"
	"sync"
	"time"
)

// RateLimiter enforces a requests-per-minute ceiling over a sliding window.
// It is shared by every worker, so the aggregate request rate stays bounded
// no matter how many goroutines fetch concurrently.
type RateLimiter struct {
	requestTimes []time.Time
	maxRequests  int
	window       time.Duration
	mu           sync.Mutex
}

// NewRateLimiter creates a limiter allowing maxPerMinute requests in any
// 60-second sliding window
func NewRateLimiter(maxPerMinute int) *RateLimiter {
	return &RateLimiter{
		requestTimes: make([]time.Time, 0, maxPerMinute),
		maxRequests:  maxPerMinute,
		window:       time.Minute,
	}
}

// Allow reports whether a request may proceed now, and records it if so
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.evict(now)

	if len(r.requestTimes) < r.maxRequests {
		r.requestTimes = append(r.requestTimes, now)
		return true
	}

	return false
}

// Wait blocks until a request slot is available or the context is cancelled
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.Allow() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.retryAfter()):
		}
	}
}

// retryAfter returns how long until the oldest in-window request expires
func (r *RateLimiter) retryAfter() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.requestTimes) == 0 {
		return 10 * time.Millisecond
	}

	wait := r.window - time.Since(r.requestTimes[0])
	if wait < 10*time.Millisecond {
		wait = 10 * time.Millisecond
	}
	return wait
}

// evict drops request timestamps older than the window. Caller holds mu.
func (r *RateLimiter) evict(now time.Time) {
	cutoff := now.Add(-r.window)
	valid := r.requestTimes[:0]
	for _, t := range r.requestTimes {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	r.requestTimes = valid
}
