package engine

import (
	"sync"
	"time"
)

// rateLimiter enforces a fixed per-user window. Buckets are created lazily
// and reset in place on the first check after the window expires, so idle
// users never need a sweeper.
type rateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	buckets map[int64]*bucket
}

type bucket struct {
	start time.Time
	count int
}

func newRateLimiter(window time.Duration, max int) *rateLimiter {
	return &rateLimiter{
		window:  window,
		max:     max,
		buckets: make(map[int64]*bucket),
	}
}

// allow counts one message against the user's window and reports whether it
// still fits.
func (l *rateLimiter) allow(userID int64, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[userID]
	if !ok || now.Sub(b.start) >= l.window {
		l.buckets[userID] = &bucket{start: now, count: 1}
		return true
	}
	if b.count >= l.max {
		return false
	}
	b.count++
	return true
}
