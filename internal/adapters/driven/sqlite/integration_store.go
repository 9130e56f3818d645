package sqlite

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

var _ driven.IntegrationStore = (*IntegrationStore)(nil)

// IntegrationStore implements driven.IntegrationStore on SQLite
type IntegrationStore struct {
	db  *DB
	now func() time.Time
}

// NewIntegrationStore creates a new IntegrationStore
func NewIntegrationStore(db *DB) *IntegrationStore {
	return &IntegrationStore{db: db, now: time.Now}
}

const integrationColumns = `id, user_id, provider, connected, access_token, refresh_token,
	expires_at, settings, created_at, updated_at`

// Get retrieves the record for a (user, provider) pair
func (s *IntegrationStore) Get(ctx context.Context, subjectID string, provider domain.Provider) (*domain.IntegrationRecord, error) {
	query := `SELECT ` + integrationColumns + `
		FROM user_integrations
		WHERE user_id = ? AND provider = ?`

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
		WHERE user_id = ?
		ORDER BY provider`

	rows, err := s.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

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

// Upsert inserts or updates the record keyed on (user_id, provider).
// A NULL refresh token keeps the stored one.
func (s *IntegrationStore) Upsert(ctx context.Context, record *domain.IntegrationRecord) error {
	settings, err := domain.EncodeSettings(record.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := toMillis(s.now())

	query := `
		INSERT INTO user_integrations (id, user_id, provider, connected, access_token, refresh_token,
		                               expires_at, settings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			connected = excluded.connected,
			access_token = excluded.access_token,
			refresh_token = COALESCE(excluded.refresh_token, user_integrations.refresh_token),
			expires_at = excluded.expires_at,
			settings = excluded.settings,
			updated_at = excluded.updated_at
		RETURNING id, created_at, updated_at
	`

	var createdAt, updatedAt int64
	err = s.db.QueryRowContext(ctx, query,
		record.ID,
		record.SubjectID,
		string(record.Provider),
		record.Connected,
		nullString(record.AccessTokenCiphertext),
		nullString(record.RefreshTokenCiphertext),
		nullMillis(record.ExpiresAt),
		string(settings),
		now,
		now,
	).Scan(&record.ID, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("upsert integration: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return nil
}

// UpdateTokens stores refreshed credentials
func (s *IntegrationStore) UpdateTokens(ctx context.Context, subjectID string, provider domain.Provider, update domain.TokenUpdate) error {
	query := `
		UPDATE user_integrations SET
			access_token = ?,
			refresh_token = COALESCE(?, refresh_token),
			expires_at = ?,
			updated_at = ?
		WHERE user_id = ? AND provider = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		update.AccessTokenCiphertext,
		nullString(update.RefreshTokenCiphertext),
		toMillis(update.ExpiresAt),
		toMillis(s.now()),
		subjectID,
		string(provider),
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

	query := `UPDATE user_integrations SET settings = ?, updated_at = ? WHERE user_id = ? AND provider = ?`

	res, err := s.db.ExecContext(ctx, query, string(data), toMillis(s.now()), subjectID, string(provider))
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return requireRow(res)
}

// Disconnect clears credentials and keeps the row
func (s *IntegrationStore) Disconnect(ctx context.Context, subjectID string, provider domain.Provider) error {
	query := `
		UPDATE user_integrations SET
			connected = 0,
			access_token = NULL,
			refresh_token = NULL,
			expires_at = NULL,
			updated_at = ?
		WHERE user_id = ? AND provider = ?
	`

	res, err := s.db.ExecContext(ctx, query, toMillis(s.now()), subjectID, string(provider))
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
		record    domain.IntegrationRecord
		provider  string
		access    sql.NullString
		refresh   sql.NullString
		expiresAt sql.NullInt64
		settings  string
		createdAt int64
		updatedAt int64
	)

	err := row.Scan(
		&record.ID,
		&record.SubjectID,
		&provider,
		&record.Connected,
		&access,
		&refresh,
		&expiresAt,
		&settings,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Provider = domain.Provider(provider)
	record.AccessTokenCiphertext = stringPtr(access)
	record.RefreshTokenCiphertext = stringPtr(refresh)
	record.ExpiresAt = millisPtr(expiresAt)
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)

	record.Settings, err = domain.DecodeSettings(record.Provider, []byte(settings))
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
