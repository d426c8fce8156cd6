package ratelimit

import (
	"sync"
	"time"
)

// bucket is one key's counter for its own window. Windows start on the
// key's first request after expiry, not on a shared clock, so one key
// rolling over never refreshes another key's budget.
type bucket struct {
	count    int
	windowAt time.Time
}

// Limiter is a per-key fixed-window request counter. Each key (player
// address, admin token) gets its own budget and its own window.
// Enforcement happens before any business logic runs.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewLimiter allows limit requests per key per window
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records a request for the key and reports whether it is within
// budget for the key's current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowAt) > l.window {
		b = &bucket{windowAt: now}
		l.buckets[key] = b
	}

	b.count++
	return b.count <= l.limit
}
