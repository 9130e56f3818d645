package services

import (
	"sync"
	"testing"
	"time"

	"github.com/Redtoridefire/Job-Dashboard/internal/adapters/driven/crypto"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven/mocks"
)

// testClock is a settable clock shared by a test's services
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestCodec(t *testing.T) *crypto.Codec {
	t.Helper()
	codec, err := crypto.NewCodec("test-encryption-secret")
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	return codec
}

func seal(t *testing.T, codec *crypto.Codec, plaintext string) *string {
	t.Helper()
	ct, err := codec.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	return &ct
}

func open(t *testing.T, codec *crypto.Codec, envelope *string) string {
	t.Helper()
	if envelope == nil {
		t.Fatal("expected ciphertext, got nil")
	}
	pt, err := codec.Decrypt(*envelope)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	return pt
}

// seedCalendar stores a connected calendar record with the given tokens
func seedCalendar(t *testing.T, store *mocks.MockIntegrationStore, codec *crypto.Codec, subjectID, access, refresh string, expiresAt time.Time) {
	t.Helper()
	record := &domain.IntegrationRecord{
		ID:                    subjectID + "-calendar",
		SubjectID:             subjectID,
		Provider:              domain.ProviderGoogleCalendar,
		Connected:             true,
		AccessTokenCiphertext: seal(t, codec, access),
		ExpiresAt:             &expiresAt,
		Settings:              domain.DefaultCalendarSettings(),
	}
	if refresh != "" {
		record.RefreshTokenCiphertext = seal(t, codec, refresh)
	}
	store.Put(record)
}

// seedChannel stores a connected messaging record for chatID
func seedChannel(store *mocks.MockIntegrationStore, subjectID, chatID string, toggles domain.NotificationToggles) {
	settings := domain.DefaultMessagingSettings(chatID)
	settings.Messaging.Notifications = toggles
	store.Put(&domain.IntegrationRecord{
		ID:        subjectID + "-telegram",
		SubjectID: subjectID,
		Provider:  domain.ProviderTelegram,
		Connected: true,
		Settings:  settings,
	})
}

var allToggles = domain.NotificationToggles{Interviews: true, Deadlines: true, StatusChanges: true}
