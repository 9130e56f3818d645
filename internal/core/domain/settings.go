package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CalendarSettings controls which events are synced to the calendar provider
type CalendarSettings struct {
	SyncInterviews bool `json:"syncInterviews"`
	SyncDeadlines  bool `json:"syncDeadlines"`
}

// NotificationToggles controls which notifications are sent to a channel
type NotificationToggles struct {
	Interviews    bool `json:"interviews"`
	Deadlines     bool `json:"deadlines"`
	StatusChanges bool `json:"statusChanges"`
}

// MessagingSettings holds the verified channel and its notification toggles
type MessagingSettings struct {
	ChannelID     string              `json:"chatId"`
	Notifications NotificationToggles `json:"notifications"`
}

// Settings is the per-provider configuration of a record.
// Exactly one field is set, matching the record's provider.
type Settings struct {
	Calendar  *CalendarSettings
	Messaging *MessagingSettings
}

// DefaultCalendarSettings returns the settings applied on first connect
func DefaultCalendarSettings() Settings {
	return Settings{Calendar: &CalendarSettings{SyncInterviews: true, SyncDeadlines: true}}
}

// DefaultMessagingSettings returns the settings applied on first verification
func DefaultMessagingSettings(channelID string) Settings {
	return Settings{Messaging: &MessagingSettings{
		ChannelID: channelID,
		Notifications: NotificationToggles{
			Interviews:    true,
			Deadlines:     true,
			StatusChanges: true,
		},
	}}
}

// IsZero reports whether no settings are set
func (s Settings) IsZero() bool {
	return s.Calendar == nil && s.Messaging == nil
}

// Validate checks that the settings match the provider's schema
func (s Settings) Validate(p Provider) error {
	switch p {
	case ProviderGoogleCalendar:
		if s.Messaging != nil || s.Calendar == nil {
			return fmt.Errorf("%w: calendar settings required for %s", ErrInvalidInput, p)
		}
	case ProviderTelegram:
		if s.Calendar != nil || s.Messaging == nil {
			return fmt.Errorf("%w: messaging settings required for %s", ErrInvalidInput, p)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidInput, p)
	}
	return nil
}

// MarshalJSON renders whichever schema is set
func (s Settings) MarshalJSON() ([]byte, error) {
	switch {
	case s.Calendar != nil:
		return json.Marshal(s.Calendar)
	case s.Messaging != nil:
		return json.Marshal(s.Messaging)
	default:
		return []byte("{}"), nil
	}
}

// EncodeSettings serializes settings for storage
func EncodeSettings(s Settings) ([]byte, error) {
	return s.MarshalJSON()
}

// DecodeSettings parses stored settings using the provider's schema.
// Empty input decodes to zero settings.
func DecodeSettings(p Provider, data []byte) (Settings, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("{}")) {
		return Settings{}, nil
	}

	switch p {
	case ProviderGoogleCalendar:
		var c CalendarSettings
		if err := json.Unmarshal(data, &c); err != nil {
			return Settings{}, fmt.Errorf("decode calendar settings: %w", err)
		}
		return Settings{Calendar: &c}, nil
	case ProviderTelegram:
		var m MessagingSettings
		if err := json.Unmarshal(data, &m); err != nil {
			return Settings{}, fmt.Errorf("decode messaging settings: %w", err)
		}
		return Settings{Messaging: &m}, nil
	default:
		return Settings{}, fmt.Errorf("%w: unknown provider %q", ErrInvalidInput, p)
	}
}
