package mocks

import (
	"context"
	"sync"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure MockRateLimiter implements RateLimiter
var _ driven.RateLimiter = (*MockRateLimiter)(nil)

// MockRateLimiter allows the first Limit attempts per key
type MockRateLimiter struct {
	mu     sync.Mutex
	counts map[string]int

	Limit int
	Err   error
}

// NewMockRateLimiter creates a limiter allowing limit attempts per key
func NewMockRateLimiter(limit int) *MockRateLimiter {
	return &MockRateLimiter{counts: make(map[string]int), Limit: limit}
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	m.counts[key]++
	return m.counts[key] <= m.Limit, nil
}

// Attempts returns the number of attempts recorded for key
func (m *MockRateLimiter) Attempts(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

// Reset clears all counters, as if the window elapsed
func (m *MockRateLimiter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = make(map[string]int)
}
