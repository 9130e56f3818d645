package mocks

import (
	"context"
	"sync"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure MockMessenger implements Messenger
var _ driven.Messenger = (*MockMessenger)(nil)

// SentMessage records one delivered message
type SentMessage struct {
	ChatID    string
	Text      string
	ParseMode string
}

// MockMessenger records messages instead of delivering them
type MockMessenger struct {
	mu     sync.Mutex
	sent   []SentMessage
	nextID int64

	// SendErr, when set, is returned by SendMessage
	SendErr error
	// Username is returned by BotUsername; UsernameErr overrides it
	Username    string
	UsernameErr error
}

// NewMockMessenger creates a new MockMessenger
func NewMockMessenger() *MockMessenger {
	return &MockMessenger{Username: "TestBot", nextID: 100}
}

func (m *MockMessenger) SendMessage(ctx context.Context, chatID, text, parseMode string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return 0, m.SendErr
	}
	m.nextID++
	m.sent = append(m.sent, SentMessage{ChatID: chatID, Text: text, ParseMode: parseMode})
	return m.nextID, nil
}

func (m *MockMessenger) BotUsername(ctx context.Context) (string, error) {
	if m.UsernameErr != nil {
		return "", m.UsernameErr
	}
	return m.Username, nil
}

// Sent returns a copy of the delivered messages
func (m *MockMessenger) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}
