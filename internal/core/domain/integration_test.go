package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{"google", ProviderGoogleCalendar, false},
		{"google_calendar", ProviderGoogleCalendar, false},
		{"telegram", ProviderTelegram, false},
		{"slack", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProvider(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestProvider_Properties(t *testing.T) {
	if !ProviderGoogleCalendar.IsValid() || !ProviderTelegram.IsValid() {
		t.Error("known providers should be valid")
	}
	if Provider("github").IsValid() {
		t.Error("unknown provider should not be valid")
	}
	if !ProviderGoogleCalendar.UsesOAuth() {
		t.Error("calendar provider uses OAuth")
	}
	if ProviderTelegram.UsesOAuth() {
		t.Error("telegram does not use OAuth")
	}
	if ProviderGoogleCalendar.DisplayName() != "Google Calendar" {
		t.Errorf("unexpected display name %q", ProviderGoogleCalendar.DisplayName())
	}
}

func TestIntegrationRecord_NeedsRefresh(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry", nil, true},
		{"already expired", ptrTime(now.Add(-time.Minute)), true},
		{"expires in 4m59s", ptrTime(now.Add(4*time.Minute + 59*time.Second)), true},
		{"expires in exactly 5m", ptrTime(now.Add(5 * time.Minute)), true},
		{"expires in 5m01s", ptrTime(now.Add(5*time.Minute + time.Second)), false},
		{"expires in 1h", ptrTime(now.Add(time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &IntegrationRecord{ExpiresAt: tt.expiresAt}
			if got := r.NeedsRefresh(now, RefreshBuffer); got != tt.want {
				t.Errorf("NeedsRefresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntegrationRecord_HasAccessToken(t *testing.T) {
	empty := ""
	ct := "aXY=:dGFn:Y3Q="

	tests := []struct {
		name   string
		record IntegrationRecord
		want   bool
	}{
		{"connected with token", IntegrationRecord{Connected: true, AccessTokenCiphertext: &ct}, true},
		{"disconnected", IntegrationRecord{Connected: false, AccessTokenCiphertext: &ct}, false},
		{"nil token", IntegrationRecord{Connected: true}, false},
		{"empty token", IntegrationRecord{Connected: true, AccessTokenCiphertext: &empty}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.HasAccessToken(); got != tt.want {
				t.Errorf("HasAccessToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntegrationRecord_ToStatus(t *testing.T) {
	ct := "secret-envelope"
	r := &IntegrationRecord{
		SubjectID:             "user-1",
		Provider:              ProviderTelegram,
		Connected:             true,
		AccessTokenCiphertext: &ct,
		Settings:              DefaultMessagingSettings("123456789"),
	}

	status := r.ToStatus()
	if status.Name != "Telegram" {
		t.Errorf("expected name Telegram, got %q", status.Name)
	}
	if status.Settings.Messaging.ChannelID != "******789" {
		t.Errorf("expected masked chat id, got %q", status.Settings.Messaging.ChannelID)
	}
	if r.Settings.Messaging.ChannelID != "123456789" {
		t.Error("ToStatus must not modify the record")
	}
}

func TestMaskChannelID(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"12", "12"},
		{"123", "123"},
		{"1234", "*234"},
		{"-1001234567", "********567"},
	}
	for _, tt := range tests {
		if got := MaskChannelID(tt.in); got != tt.want {
			t.Errorf("MaskChannelID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
