package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

var _ driven.ConsumedStateStore = (*ConsumedStateStore)(nil)

// ConsumedStateStore remembers spent state nonces until they expire
type ConsumedStateStore struct {
	mu    sync.Mutex
	now   func() time.Time
	spent map[string]time.Time
}

// NewConsumedStateStore creates an empty registry
func NewConsumedStateStore() *ConsumedStateStore {
	return &ConsumedStateStore{now: time.Now, spent: make(map[string]time.Time)}
}

// Consume marks the nonce spent. Returns false if it was already spent.
func (s *ConsumedStateStore) Consume(_ context.Context, nonce string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for n, exp := range s.spent {
		if now.After(exp) {
			delete(s.spent, n)
		}
	}

	if _, ok := s.spent[nonce]; ok {
		return false, nil
	}
	s.spent[nonce] = expiresAt
	return true, nil
}
