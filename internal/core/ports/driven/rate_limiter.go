package driven

import "context"

// RateLimiter counts attempts per key in a fixed window.
type RateLimiter interface {
	// Allow records an attempt for key and reports whether it is within the limit.
	// Rejected attempts still count toward the current window.
	Allow(ctx context.Context, key string) (bool, error)
}
