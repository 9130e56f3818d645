package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure ConsumedStateStore implements the interface.
var _ driven.ConsumedStateStore = (*ConsumedStateStore)(nil)

// ConsumedStateStore implements driven.ConsumedStateStore using PostgreSQL.
type ConsumedStateStore struct {
	db *sql.DB
}

// NewConsumedStateStore creates a new PostgreSQL-backed consumed state registry.
func NewConsumedStateStore(db *sql.DB) *ConsumedStateStore {
	return &ConsumedStateStore{db: db}
}

// Consume records the nonce. The primary key makes the first insert win,
// so exactly one of any concurrent callers sees true.
func (s *ConsumedStateStore) Consume(ctx context.Context, nonce string, expiresAt time.Time) (bool, error) {
	query := `
		INSERT INTO consumed_oauth_states (nonce, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (nonce) DO NOTHING
	`

	res, err := s.db.ExecContext(ctx, query, nonce, expiresAt)
	if err != nil {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}
	return n == 1, nil
}

// Cleanup removes nonces whose tokens have expired anyway.
func (s *ConsumedStateStore) Cleanup(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM consumed_oauth_states WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("cleanup oauth states: %w", err)
	}
	return res.RowsAffected()
}
