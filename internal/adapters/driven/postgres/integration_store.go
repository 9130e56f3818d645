package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.IntegrationStore = (*IntegrationStore)(nil)

// IntegrationStore implements driven.IntegrationStore using PostgreSQL
type IntegrationStore struct {
	db *DB
}

// NewIntegrationStore creates a new IntegrationStore
func NewIntegrationStore(db *DB) *IntegrationStore {
	return &IntegrationStore{db: db}
}

const integrationColumns = `id, user_id, provider, connected, access_token, refresh_token,
	expires_at, settings, created_at, updated_at`

// Get retrieves the record for a (user, provider) pair
func (s *IntegrationStore) Get(ctx context.Context, subjectID string, provider domain.Provider) (*domain.IntegrationRecord, error) {
	query := `SELECT ` + integrationColumns + `
		FROM user_integrations
		WHERE user_id = $1 AND provider = $2`

	record, err := scanIntegration(s.db.QueryRowContext(ctx, query, subjectID, string(provider)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get integration: %w", err)
	}
	return record, nil
}

// List retrieves every record of a user
func (s *IntegrationStore) List(ctx context.Context, subjectID string) ([]*domain.IntegrationRecord, error) {
	query := `SELECT ` + integrationColumns + `
		FROM user_integrations
		WHERE user_id = $1
		ORDER BY provider`

	rows, err := s.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	defer rows.Close()

	var records []*domain.IntegrationRecord
	for rows.Next() {
		record, err := scanIntegration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan integration: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Upsert inserts or updates the record in one statement keyed on (user_id, provider).
// A NULL refresh token keeps the stored one.
func (s *IntegrationStore) Upsert(ctx context.Context, record *domain.IntegrationRecord) error {
	settings, err := domain.EncodeSettings(record.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now()

	query := `
		INSERT INTO user_integrations (id, user_id, provider, connected, access_token, refresh_token,
		                               expires_at, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			connected = EXCLUDED.connected,
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(EXCLUDED.refresh_token, user_integrations.refresh_token),
			expires_at = EXCLUDED.expires_at,
			settings = EXCLUDED.settings,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		record.ID,
		record.SubjectID,
		string(record.Provider),
		record.Connected,
		NullString(record.AccessTokenCiphertext),
		NullString(record.RefreshTokenCiphertext),
		NullTime(record.ExpiresAt),
		string(settings),
		now,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert integration: %w", err)
	}
	return nil
}

// UpdateTokens stores refreshed credentials
func (s *IntegrationStore) UpdateTokens(ctx context.Context, subjectID string, provider domain.Provider, update domain.TokenUpdate) error {
	query := `
		UPDATE user_integrations SET
			access_token = $3,
			refresh_token = COALESCE($4, refresh_token),
			expires_at = $5,
			updated_at = NOW()
		WHERE user_id = $1 AND provider = $2
	`

	res, err := s.db.ExecContext(ctx, query,
		subjectID,
		string(provider),
		update.AccessTokenCiphertext,
		NullString(update.RefreshTokenCiphertext),
		update.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("update tokens: %w", err)
	}
	return requireRow(res)
}

// UpdateSettings replaces the settings document
func (s *IntegrationStore) UpdateSettings(ctx context.Context, subjectID string, provider domain.Provider, settings domain.Settings) error {
	data, err := domain.EncodeSettings(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	query := `
		UPDATE user_integrations SET settings = $3, updated_at = NOW()
		WHERE user_id = $1 AND provider = $2
	`

	res, err := s.db.ExecContext(ctx, query, subjectID, string(provider), string(data))
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return requireRow(res)
}

// Disconnect clears credentials and keeps the row
func (s *IntegrationStore) Disconnect(ctx context.Context, subjectID string, provider domain.Provider) error {
	query := `
		UPDATE user_integrations SET
			connected = FALSE,
			access_token = NULL,
			refresh_token = NULL,
			expires_at = NULL,
			updated_at = NOW()
		WHERE user_id = $1 AND provider = $2
	`

	res, err := s.db.ExecContext(ctx, query, subjectID, string(provider))
	if err != nil {
		return fmt.Errorf("disconnect integration: %w", err)
	}
	return requireRow(res)
}

// Ping checks if the database is reachable
func (s *IntegrationStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntegration(row rowScanner) (*domain.IntegrationRecord, error) {
	var (
		record        domain.IntegrationRecord
		provider      string
		access        sql.NullString
		refresh       sql.NullString
		expiresAt     sql.NullTime
		settingsBytes []byte
	)

	err := row.Scan(
		&record.ID,
		&record.SubjectID,
		&provider,
		&record.Connected,
		&access,
		&refresh,
		&expiresAt,
		&settingsBytes,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Provider = domain.Provider(provider)
	record.AccessTokenCiphertext = StringPtr(access)
	record.RefreshTokenCiphertext = StringPtr(refresh)
	record.ExpiresAt = TimePtr(expiresAt)

	record.Settings, err = domain.DecodeSettings(record.Provider, settingsBytes)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
