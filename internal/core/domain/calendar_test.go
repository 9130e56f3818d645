package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestInterviewEventRequest_ToEvent(t *testing.T) {
	at := time.Date(2025, 4, 10, 14, 0, 0, 0, time.UTC)
	req := &InterviewEventRequest{
		Company:       "Acme",
		Role:          "Backend Engineer",
		InterviewType: "technical",
		ScheduledAt:   at,
		Location:      "HQ",
		MeetingLink:   "https://meet.example.com/abc",
		Interviewers:  []string{"Ada", "Linus"},
		Notes:         "Bring laptop",
	}

	ev := req.ToEvent()

	if ev.Summary != "Technical Interview - Acme" {
		t.Errorf("unexpected summary %q", ev.Summary)
	}
	if !ev.End.Equal(at.Add(time.Hour)) {
		t.Errorf("expected default 60 minute duration, got %v", ev.End.Sub(ev.Start))
	}
	if ev.Location != "https://meet.example.com/abc" {
		t.Errorf("meeting link should take precedence as location, got %q", ev.Location)
	}
	for _, want := range []string{"Interview for Backend Engineer at Acme", "Type: technical", "Interviewers: Ada, Linus", "Notes:\nBring laptop", "Meeting Link: https://meet.example.com/abc"} {
		if !strings.Contains(ev.Description, want) {
			t.Errorf("description missing %q: %q", want, ev.Description)
		}
	}
	if len(ev.Reminders) != 2 || ev.Reminders[0] != (EventReminder{Method: "popup", Minutes: 30}) || ev.Reminders[1] != (EventReminder{Method: "email", Minutes: 1440}) {
		t.Errorf("unexpected reminders %+v", ev.Reminders)
	}
}

func TestInterviewEventRequest_CustomDuration(t *testing.T) {
	at := time.Date(2025, 4, 10, 14, 0, 0, 0, time.UTC)
	req := &InterviewEventRequest{Company: "Acme", ScheduledAt: at, DurationMin: 45, Location: "Room 1"}

	ev := req.ToEvent()
	if ev.End.Sub(ev.Start) != 45*time.Minute {
		t.Errorf("expected 45m, got %v", ev.End.Sub(ev.Start))
	}
	if ev.Location != "Room 1" {
		t.Errorf("expected location fallback, got %q", ev.Location)
	}
}

func TestInterviewEventRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  InterviewEventRequest
		ok   bool
	}{
		{"valid", InterviewEventRequest{Company: "Acme", ScheduledAt: time.Now()}, true},
		{"no company", InterviewEventRequest{ScheduledAt: time.Now()}, false},
		{"no time", InterviewEventRequest{Company: "Acme"}, false},
		{"negative duration", InterviewEventRequest{Company: "Acme", ScheduledAt: time.Now(), DurationMin: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDeadlineEventRequest_ToEvent(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	req := &DeadlineEventRequest{
		Company:  "Acme",
		Role:     "SRE",
		Deadline: time.Date(2025, 5, 20, 9, 30, 0, 0, loc),
		Notes:    "Cover letter",
	}

	ev := req.ToEvent()

	wantStart := time.Date(2025, 5, 20, 23, 0, 0, 0, loc)
	if !ev.Start.Equal(wantStart) {
		t.Errorf("expected start %v, got %v", wantStart, ev.Start)
	}
	if !ev.End.Equal(wantStart.Add(59 * time.Minute)) {
		t.Errorf("expected end at 23:59, got %v", ev.End)
	}
	if ev.Summary != "Deadline: Acme - SRE" {
		t.Errorf("unexpected summary %q", ev.Summary)
	}
	if !strings.Contains(ev.Description, "Notes:\nCover letter") {
		t.Errorf("description missing notes: %q", ev.Description)
	}
	if len(ev.Reminders) != 2 || ev.Reminders[0].Minutes != 60 || ev.Reminders[1].Minutes != 1440 {
		t.Errorf("unexpected reminders %+v", ev.Reminders)
	}
}

func TestEventPatch_Validate(t *testing.T) {
	title := "New title"
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	if err := (&EventPatch{}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty patch: expected ErrInvalidInput, got %v", err)
	}
	if err := (&EventPatch{Start: &start, End: &end}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("inverted range: expected ErrInvalidInput, got %v", err)
	}
	if err := (&EventPatch{Summary: &title}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
