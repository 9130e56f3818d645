package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure MockCalendarAPI implements CalendarAPI
var _ driven.CalendarAPI = (*MockCalendarAPI)(nil)

// MockCalendarAPI is an in-memory calendar keyed by event id
type MockCalendarAPI struct {
	mu     sync.Mutex
	events map[string]*domain.CalendarEvent
	seq    int

	// Tokens records the access token of every call
	Tokens []string
	// Err, when set, is returned by every method
	Err error
}

// NewMockCalendarAPI creates a new MockCalendarAPI
func NewMockCalendarAPI() *MockCalendarAPI {
	return &MockCalendarAPI{events: make(map[string]*domain.CalendarEvent)}
}

func (m *MockCalendarAPI) CreateEvent(ctx context.Context, accessToken string, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tokens = append(m.Tokens, accessToken)
	if m.Err != nil {
		return nil, m.Err
	}
	m.seq++
	e := *event
	e.ID = fmt.Sprintf("evt-%d", m.seq)
	m.events[e.ID] = &e
	out := e
	return &out, nil
}

func (m *MockCalendarAPI) GetEvent(ctx context.Context, accessToken, eventID string) (*domain.CalendarEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tokens = append(m.Tokens, accessToken)
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *e
	return &out, nil
}

func (m *MockCalendarAPI) UpdateEvent(ctx context.Context, accessToken, eventID string, patch *domain.EventPatch) (*domain.CalendarEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tokens = append(m.Tokens, accessToken)
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Summary != nil {
		e.Summary = *patch.Summary
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.Start != nil {
		e.Start = *patch.Start
	}
	if patch.End != nil {
		e.End = *patch.End
	}
	out := *e
	return &out, nil
}

func (m *MockCalendarAPI) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tokens = append(m.Tokens, accessToken)
	if m.Err != nil {
		return m.Err
	}
	delete(m.events, eventID)
	return nil
}

func (m *MockCalendarAPI) ListEvents(ctx context.Context, accessToken string, r domain.EventRange) ([]*domain.CalendarEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tokens = append(m.Tokens, accessToken)
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.CalendarEvent
	for _, e := range m.events {
		if !r.TimeMin.IsZero() && e.End.Before(r.TimeMin) {
			continue
		}
		if !r.TimeMax.IsZero() && e.Start.After(r.TimeMax) {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// Count returns the number of stored events
func (m *MockCalendarAPI) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}
