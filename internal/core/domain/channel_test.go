package domain

import (
	"errors"
	"testing"
)

func TestNormalizeChannelID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"user id", "123456789", "123456789", false},
		{"group id", "-1001234567890", "-1001234567890", false},
		{"trimmed", "  42 ", "42", false},
		{"leading zeros", "007", "7", false},
		{"empty", "", "", true},
		{"zero", "0", "", true},
		{"letters", "abc", "", true},
		{"username", "@somebody", "", true},
		{"decimal", "12.5", "", true},
		{"too long", "1234567890123456", "", true},
		{"negative zero", "-0", "", true},
		{"inner space", "12 34", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeChannelID(tt.in)
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
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseMode_IsValid(t *testing.T) {
	for _, m := range []ParseMode{ParseModeMarkdown, ParseModeMarkdownV2, ParseModeHTML} {
		if !m.IsValid() {
			t.Errorf("%s should be valid", m)
		}
	}
	if ParseMode("plain").IsValid() {
		t.Error("plain should not be valid")
	}
}
