package driven

import (
	"context"
	"time"
)

// ConsumedStateStore remembers OAuth state nonces that have already been used.
// Entries only need to outlive the state token TTL.
type ConsumedStateStore interface {
	// Consume marks a nonce as used.
	// Returns true the first time a nonce is consumed and false on every later call.
	Consume(ctx context.Context, nonce string, expiresAt time.Time) (bool, error)
}
