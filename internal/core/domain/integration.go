package domain

import (
	"fmt"
	"time"
)

// Provider identifies a third-party integration
type Provider string

const (
	ProviderGoogleCalendar Provider = "google_calendar"
	ProviderTelegram       Provider = "telegram"
)

// RefreshBuffer is how long before expiry an access token is treated as expired.
const RefreshBuffer = 5 * time.Minute

// IsValid reports whether p is a known provider
func (p Provider) IsValid() bool {
	switch p {
	case ProviderGoogleCalendar, ProviderTelegram:
		return true
	}
	return false
}

// UsesOAuth reports whether the provider's credentials come from an OAuth grant
func (p Provider) UsesOAuth() bool {
	return p == ProviderGoogleCalendar
}

// DisplayName returns a human-readable name for a provider
func (p Provider) DisplayName() string {
	switch p {
	case ProviderGoogleCalendar:
		return "Google Calendar"
	case ProviderTelegram:
		return "Telegram"
	default:
		return string(p)
	}
}

// ParseProvider resolves a provider from a path segment.
// "google" is accepted as an alias for the calendar provider.
func ParseProvider(s string) (Provider, error) {
	switch s {
	case "google", string(ProviderGoogleCalendar):
		return ProviderGoogleCalendar, nil
	case string(ProviderTelegram):
		return ProviderTelegram, nil
	}
	return "", fmt.Errorf("%w: unknown provider %q", ErrInvalidInput, s)
}

// IntegrationRecord is the one persisted row per (subject, provider) pair.
// Token fields only ever hold Secret Codec envelopes.
type IntegrationRecord struct {
	ID                     string     `json:"id"`
	SubjectID              string     `json:"user_id"`
	Provider               Provider   `json:"provider"`
	Connected              bool       `json:"connected"`
	AccessTokenCiphertext  *string    `json:"-"`
	RefreshTokenCiphertext *string    `json:"-"`
	ExpiresAt              *time.Time `json:"expires_at,omitempty"`
	Settings               Settings   `json:"settings"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// HasAccessToken reports whether the record is connected and holds an access token
func (r *IntegrationRecord) HasAccessToken() bool {
	return r.Connected && r.AccessTokenCiphertext != nil && *r.AccessTokenCiphertext != ""
}

// NeedsRefresh reports whether the access token is expired or within buffer of expiry.
// A record without an expiry is treated as expired.
func (r *IntegrationRecord) NeedsRefresh(now time.Time, buffer time.Duration) bool {
	if r.ExpiresAt == nil {
		return true
	}
	return !now.Before(r.ExpiresAt.Add(-buffer))
}

// TokenUpdate is the set of columns written after a refresh.
// A nil RefreshTokenCiphertext leaves the stored refresh token untouched.
type TokenUpdate struct {
	AccessTokenCiphertext  string
	RefreshTokenCiphertext *string
	ExpiresAt              time.Time
}

// IntegrationStatus is the client-visible view of a record (no credentials)
type IntegrationStatus struct {
	Provider  Provider   `json:"provider"`
	Name      string     `json:"name"`
	Available bool       `json:"available"`
	Connected bool       `json:"connected"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Settings  Settings   `json:"settings"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToStatus converts a record to its safe view. Channel ids are masked.
func (r *IntegrationRecord) ToStatus() *IntegrationStatus {
	settings := r.Settings
	if settings.Messaging != nil {
		m := *settings.Messaging
		m.ChannelID = MaskChannelID(m.ChannelID)
		settings.Messaging = &m
	}
	return &IntegrationStatus{
		Provider:  r.Provider,
		Name:      r.Provider.DisplayName(),
		Connected: r.Connected,
		ExpiresAt: r.ExpiresAt,
		Settings:  settings,
		UpdatedAt: r.UpdatedAt,
	}
}

// MaskChannelID keeps the last three characters of a channel id
func MaskChannelID(id string) string {
	if len(id) <= 3 {
		return id
	}
	masked := make([]byte, len(id))
	for i := range masked[:len(id)-3] {
		masked[i] = '*'
	}
	copy(masked[len(id)-3:], id[len(id)-3:])
	return string(masked)
}
