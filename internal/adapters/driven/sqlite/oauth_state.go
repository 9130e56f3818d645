package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

var _ driven.ConsumedStateStore = (*ConsumedStateStore)(nil)

// ConsumedStateStore records spent OAuth state nonces on SQLite
type ConsumedStateStore struct {
	db *DB
}

// NewConsumedStateStore creates a new ConsumedStateStore
func NewConsumedStateStore(db *DB) *ConsumedStateStore {
	return &ConsumedStateStore{db: db}
}

// Consume marks the nonce as spent. Returns false if it was already spent.
func (s *ConsumedStateStore) Consume(ctx context.Context, nonce string, expiresAt time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO consumed_oauth_states (nonce, expires_at) VALUES (?, ?) ON CONFLICT (nonce) DO NOTHING`,
		nonce, toMillis(expiresAt))
	if err != nil {
		return false, fmt.Errorf("consume state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// Cleanup removes nonces whose state tokens can no longer verify
func (s *ConsumedStateStore) Cleanup(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM consumed_oauth_states WHERE expires_at < ?`, toMillis(now))
	if err != nil {
		return 0, fmt.Errorf("cleanup states: %w", err)
	}
	return res.RowsAffected()
}
