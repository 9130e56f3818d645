package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConsumedStateStore = (*ConsumedStateStore)(nil)

const statePrefix = "jobdash:oauth-state:"

// ConsumedStateStore records spent OAuth state nonces with SETNX.
// Keys expire with the state token, so no cleanup is needed.
type ConsumedStateStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewConsumedStateStore creates a new Redis-backed consumed state registry
func NewConsumedStateStore(client *redis.Client) *ConsumedStateStore {
	return &ConsumedStateStore{client: client, now: time.Now}
}

// Consume marks the nonce spent. Exactly one concurrent caller sees true.
func (s *ConsumedStateStore) Consume(ctx context.Context, nonce string, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(s.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	ok, err := s.client.SetNX(ctx, statePrefix+nonce, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}
	return ok, nil
}
