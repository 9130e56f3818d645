// Package memory provides process-local implementations of driven ports
// for single-instance deployments and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

var _ driven.RateLimiter = (*RateLimiter)(nil)

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window counter held in process memory.
// Counts are lost on restart and not shared across instances.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	windows map[string]*window
}

// NewRateLimiter creates a limiter allowing limit attempts per window
func NewRateLimiter(limit int, w time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  w,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// WithClock replaces the time source. Used by tests.
func (l *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	l.now = now
	return l
}

// Allow records an attempt and reports whether it is within the limit.
// The counter restarts at 1 once the window has passed.
func (l *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.window)}
		l.sweep(now)
		return true, nil
	}

	if w.count >= l.limit {
		return false, nil
	}
	w.count++
	return true, nil
}

// sweep drops expired windows. Callers hold mu.
func (l *RateLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, k)
		}
	}
}
