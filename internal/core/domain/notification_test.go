package domain

import (
	"strings"
	"testing"
	"time"
)

func TestInterviewReminder_Text(t *testing.T) {
	r := &InterviewReminder{
		Company:       "Acme",
		Role:          "Engineer",
		InterviewType: "onsite",
		ScheduledAt:   time.Date(2025, 6, 2, 15, 4, 0, 0, time.UTC),
		Interviewers:  []string{"Grace"},
		MeetingLink:   "https://meet.example.com/x",
	}

	text := r.Text()
	for _, want := range []string{
		"📅 *Interview Reminder*",
		"*Acme* - Engineer",
		"🕐 *When:* Monday, June 2, 2025 at 03:04 PM",
		"📋 *Type:* Onsite",
		"👤 *Interviewer(s):* Grace",
		"🔗 *Meeting Link:* https://meet.example.com/x",
		"_Good luck!_ 🍀",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Notes") {
		t.Error("notes section should be omitted when empty")
	}
}

func TestDeadlineReminder_Text(t *testing.T) {
	deadline := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		days    int
		emoji   string
		dueLine string
	}{
		{0, "🚨", "⏰ *Due TODAY!*"},
		{1, "🚨", "⏰ *Due TOMORROW!*"},
		{3, "⚠️", "⏰ *3 days remaining*"},
		{7, "📋", "⏰ *7 days remaining*"},
	}

	for _, tt := range tests {
		r := &DeadlineReminder{Company: "Acme", Role: "PM", Deadline: deadline, DaysRemaining: tt.days}
		text := r.Text()
		if !strings.HasPrefix(text, tt.emoji+" *Application Deadline Reminder*") {
			t.Errorf("days=%d: unexpected header in %q", tt.days, text)
		}
		if !strings.Contains(text, tt.dueLine) {
			t.Errorf("days=%d: missing %q", tt.days, tt.dueLine)
		}
	}
}

func TestStatusChange_Text(t *testing.T) {
	c := &StatusChange{Company: "Acme", Role: "PM", OldStatus: "submitted", NewStatus: "offer"}
	want := "🎉 *Application Status Update*\n\n*Acme* - PM\n\nStatus changed: _submitted_ → *offer*"
	if got := c.Text(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	c.NewStatus = "ghosted"
	if !strings.HasPrefix(c.Text(), "📋") {
		t.Error("unknown status should use the default emoji")
	}
}

func TestNotificationKind_Enabled(t *testing.T) {
	toggles := NotificationToggles{Interviews: true, Deadlines: false, StatusChanges: true}

	if !NotificationInterview.Enabled(toggles) {
		t.Error("interviews should be enabled")
	}
	if NotificationDeadline.Enabled(toggles) {
		t.Error("deadlines should be disabled")
	}
	if !NotificationStatus.Enabled(toggles) {
		t.Error("status changes should be enabled")
	}
	if !NotificationDirect.Enabled(NotificationToggles{}) {
		t.Error("direct messages are not gated by toggles")
	}
}
