package driven

import (
	"context"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
)

// IntegrationStore persists one IntegrationRecord per (subject, provider) pair.
// Token columns hold SecretCodec envelopes only.
type IntegrationStore interface {
	// Get returns the record for the pair, or domain.ErrNotFound.
	Get(ctx context.Context, subjectID string, provider domain.Provider) (*domain.IntegrationRecord, error)

	// List returns every record of a subject.
	List(ctx context.Context, subjectID string) ([]*domain.IntegrationRecord, error)

	// Upsert inserts or replaces the record for (record.SubjectID, record.Provider)
	// in a single statement, so concurrent writers never create duplicate rows.
	// A nil RefreshTokenCiphertext keeps the stored refresh token.
	Upsert(ctx context.Context, record *domain.IntegrationRecord) error

	// UpdateTokens writes refreshed credentials. Returns domain.ErrNotFound if no record exists.
	UpdateTokens(ctx context.Context, subjectID string, provider domain.Provider, update domain.TokenUpdate) error

	// UpdateSettings replaces the settings. Returns domain.ErrNotFound if no record exists.
	UpdateSettings(ctx context.Context, subjectID string, provider domain.Provider, settings domain.Settings) error

	// Disconnect clears credentials and marks the record disconnected.
	// The row is kept. Returns domain.ErrNotFound if no record exists.
	Disconnect(ctx context.Context, subjectID string, provider domain.Provider) error

	// Ping checks the backing store is reachable.
	Ping(ctx context.Context) error
}
