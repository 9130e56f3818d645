package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure MockIntegrationStore implements IntegrationStore
var _ driven.IntegrationStore = (*MockIntegrationStore)(nil)

type recordKey struct {
	subjectID string
	provider  domain.Provider
}

// MockIntegrationStore is an in-memory IntegrationStore for testing
type MockIntegrationStore struct {
	mu      sync.RWMutex
	records map[recordKey]*domain.IntegrationRecord

	// Err, when set, is returned by every method
	Err error
}

// NewMockIntegrationStore creates a new MockIntegrationStore
func NewMockIntegrationStore() *MockIntegrationStore {
	return &MockIntegrationStore{
		records: make(map[recordKey]*domain.IntegrationRecord),
	}
}

func (m *MockIntegrationStore) Get(ctx context.Context, subjectID string, provider domain.Provider) (*domain.IntegrationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	r, ok := m.records[recordKey{subjectID, provider}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneRecord(r), nil
}

func (m *MockIntegrationStore) List(ctx context.Context, subjectID string) ([]*domain.IntegrationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.IntegrationRecord
	for k, r := range m.records {
		if k.subjectID == subjectID {
			out = append(out, cloneRecord(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}

func (m *MockIntegrationStore) Upsert(ctx context.Context, record *domain.IntegrationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	now := time.Now()
	key := recordKey{record.SubjectID, record.Provider}
	next := cloneRecord(record)
	if existing, ok := m.records[key]; ok {
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
		if next.RefreshTokenCiphertext == nil {
			next.RefreshTokenCiphertext = existing.RefreshTokenCiphertext
		}
	} else {
		if next.ID == "" {
			next.ID = uuid.New().String()
		}
		next.CreatedAt = now
	}
	next.UpdatedAt = now
	m.records[key] = next
	return nil
}

func (m *MockIntegrationStore) UpdateTokens(ctx context.Context, subjectID string, provider domain.Provider, update domain.TokenUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	r, ok := m.records[recordKey{subjectID, provider}]
	if !ok {
		return domain.ErrNotFound
	}
	access := update.AccessTokenCiphertext
	expires := update.ExpiresAt
	r.AccessTokenCiphertext = &access
	r.ExpiresAt = &expires
	if update.RefreshTokenCiphertext != nil {
		rt := *update.RefreshTokenCiphertext
		r.RefreshTokenCiphertext = &rt
	}
	r.UpdatedAt = time.Now()
	return nil
}

func (m *MockIntegrationStore) UpdateSettings(ctx context.Context, subjectID string, provider domain.Provider, settings domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	r, ok := m.records[recordKey{subjectID, provider}]
	if !ok {
		return domain.ErrNotFound
	}
	r.Settings = cloneSettings(settings)
	r.UpdatedAt = time.Now()
	return nil
}

func (m *MockIntegrationStore) Disconnect(ctx context.Context, subjectID string, provider domain.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	r, ok := m.records[recordKey{subjectID, provider}]
	if !ok {
		return domain.ErrNotFound
	}
	r.Connected = false
	r.AccessTokenCiphertext = nil
	r.RefreshTokenCiphertext = nil
	r.ExpiresAt = nil
	r.UpdatedAt = time.Now()
	return nil
}

func (m *MockIntegrationStore) Ping(ctx context.Context) error {
	return m.Err
}

// Count returns the number of stored records
func (m *MockIntegrationStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Put stores a record as-is, bypassing upsert semantics
func (m *MockIntegrationStore) Put(record *domain.IntegrationRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[recordKey{record.SubjectID, record.Provider}] = cloneRecord(record)
}

func cloneRecord(r *domain.IntegrationRecord) *domain.IntegrationRecord {
	c := *r
	if r.AccessTokenCiphertext != nil {
		v := *r.AccessTokenCiphertext
		c.AccessTokenCiphertext = &v
	}
	if r.RefreshTokenCiphertext != nil {
		v := *r.RefreshTokenCiphertext
		c.RefreshTokenCiphertext = &v
	}
	if r.ExpiresAt != nil {
		v := *r.ExpiresAt
		c.ExpiresAt = &v
	}
	c.Settings = cloneSettings(r.Settings)
	return &c
}

func cloneSettings(s domain.Settings) domain.Settings {
	var c domain.Settings
	if s.Calendar != nil {
		v := *s.Calendar
		c.Calendar = &v
	}
	if s.Messaging != nil {
		v := *s.Messaging
		c.Messaging = &v
	}
	return c
}
