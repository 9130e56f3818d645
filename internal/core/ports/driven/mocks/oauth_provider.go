package mocks

import (
	"context"
	"net/url"
	"sync"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure MockOAuthProvider implements OAuthProvider
var _ driven.OAuthProvider = (*MockOAuthProvider)(nil)

// MockOAuthProvider is a scriptable OAuthProvider that counts calls
type MockOAuthProvider struct {
	mu sync.Mutex

	ExchangeToken *driven.OAuthToken
	ExchangeErr   error
	RefreshToken  *driven.OAuthToken
	RefreshErr    error

	exchangeCalls int
	refreshCalls  int
	lastCode      string
	lastRefresh   string
}

// NewMockOAuthProvider creates a new MockOAuthProvider
func NewMockOAuthProvider() *MockOAuthProvider {
	return &MockOAuthProvider{}
}

// AuthCodeURL returns a fake consent URL carrying the state
func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*driven.OAuthToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchangeCalls++
	m.lastCode = code
	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	return m.ExchangeToken, nil
}

func (m *MockOAuthProvider) Refresh(ctx context.Context, refreshToken string) (*driven.OAuthToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshCalls++
	m.lastRefresh = refreshToken
	if m.RefreshErr != nil {
		return nil, m.RefreshErr
	}
	return m.RefreshToken, nil
}

// ExchangeCalls returns the number of Exchange invocations
func (m *MockOAuthProvider) ExchangeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exchangeCalls
}

// RefreshCalls returns the number of Refresh invocations
func (m *MockOAuthProvider) RefreshCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshCalls
}

// LastRefreshToken returns the refresh token passed to the last Refresh call
func (m *MockOAuthProvider) LastRefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRefresh
}
