package mocks

import (
	"sync"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure MockRecorder implements Recorder
var _ driven.Recorder = (*MockRecorder)(nil)

// MockRecorder counts recorded events by label
type MockRecorder struct {
	mu            sync.Mutex
	Outcomes      map[domain.CallbackOutcome]int
	Refreshes     map[string]int
	Verifications map[string]int
	Messages      map[domain.NotificationKind]int
}

// NewMockRecorder creates a new MockRecorder
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{
		Outcomes:      make(map[domain.CallbackOutcome]int),
		Refreshes:     make(map[string]int),
		Verifications: make(map[string]int),
		Messages:      make(map[domain.NotificationKind]int),
	}
}

func (m *MockRecorder) CallbackOutcome(outcome domain.CallbackOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes[outcome]++
}

func (m *MockRecorder) TokenRefresh(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refreshes[result]++
}

func (m *MockRecorder) ChannelVerification(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Verifications[result]++
}

func (m *MockRecorder) MessageSent(kind domain.NotificationKind, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.Messages[kind]++
	}
}

// OutcomeCount returns how often an outcome was recorded
func (m *MockRecorder) OutcomeCount(outcome domain.CallbackOutcome) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Outcomes[outcome]
}
