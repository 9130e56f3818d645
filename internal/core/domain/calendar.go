package domain

import (
	"fmt"
	"strings"
	"time"
)

// Default event shapes for synced calendar entries
const (
	DefaultInterviewDuration = 60 * time.Minute

	InterviewPopupMinutes   = 30
	DeadlinePopupMinutes    = 60
	DayBeforeEmailMinutes   = 24 * 60
	deadlineStartHour       = 23
	deadlineDurationMinutes = 59
)

// EventReminder is a calendar notification before an event starts
type EventReminder struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

// CalendarEvent is the provider-neutral shape of a calendar entry
type CalendarEvent struct {
	ID          string          `json:"id,omitempty"`
	Summary     string          `json:"summary"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	TimeZone    string          `json:"timeZone,omitempty"`
	Reminders   []EventReminder `json:"reminders,omitempty"`
	HTMLLink    string          `json:"htmlLink,omitempty"`
}

// InterviewEventRequest describes an interview to put on the calendar
type InterviewEventRequest struct {
	Company       string    `json:"company"`
	Role          string    `json:"role"`
	InterviewType string    `json:"interviewType"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	DurationMin   int       `json:"durationMinutes,omitempty"`
	Location      string    `json:"location,omitempty"`
	MeetingLink   string    `json:"meetingLink,omitempty"`
	Interviewers  []string  `json:"interviewers,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	TimeZone      string    `json:"timeZone,omitempty"`
}

// Validate checks the required fields
func (r *InterviewEventRequest) Validate() error {
	if strings.TrimSpace(r.Company) == "" {
		return fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	if r.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}
	if r.DurationMin < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}
	return nil
}

// ToEvent builds the calendar entry for an interview
func (r *InterviewEventRequest) ToEvent() *CalendarEvent {
	duration := DefaultInterviewDuration
	if r.DurationMin > 0 {
		duration = time.Duration(r.DurationMin) * time.Minute
	}

	kind := strings.TrimSpace(r.InterviewType)
	if kind == "" {
		kind = "Job"
	} else {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Interview for %s at %s\n\nType: %s", r.Role, r.Company, r.InterviewType)
	if len(r.Interviewers) > 0 {
		fmt.Fprintf(&desc, "\nInterviewers: %s", strings.Join(r.Interviewers, ", "))
	}
	if r.Notes != "" {
		fmt.Fprintf(&desc, "\n\nNotes:\n%s", r.Notes)
	}
	if r.MeetingLink != "" {
		fmt.Fprintf(&desc, "\n\nMeeting Link: %s", r.MeetingLink)
	}

	location := r.MeetingLink
	if location == "" {
		location = r.Location
	}

	return &CalendarEvent{
		Summary:     fmt.Sprintf("%s Interview - %s", kind, r.Company),
		Description: desc.String(),
		Location:    location,
		Start:       r.ScheduledAt,
		End:         r.ScheduledAt.Add(duration),
		TimeZone:    r.TimeZone,
		Reminders: []EventReminder{
			{Method: "popup", Minutes: InterviewPopupMinutes},
			{Method: "email", Minutes: DayBeforeEmailMinutes},
		},
	}
}

// DeadlineEventRequest describes an application deadline to put on the calendar
type DeadlineEventRequest struct {
	Company  string    `json:"company"`
	Role     string    `json:"role"`
	Deadline time.Time `json:"deadline"`
	Notes    string    `json:"notes,omitempty"`
	TimeZone string    `json:"timeZone,omitempty"`
}

// Validate checks the required fields
func (r *DeadlineEventRequest) Validate() error {
	if strings.TrimSpace(r.Company) == "" {
		return fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	if r.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalidInput)
	}
	return nil
}

// ToEvent builds a late-evening block on the deadline's date
func (r *DeadlineEventRequest) ToEvent() *CalendarEvent {
	d := r.Deadline
	start := time.Date(d.Year(), d.Month(), d.Day(), deadlineStartHour, 0, 0, 0, d.Location())

	desc := fmt.Sprintf("Application deadline for %s at %s", r.Role, r.Company)
	if r.Notes != "" {
		desc += "\n\nNotes:\n" + r.Notes
	}

	return &CalendarEvent{
		Summary:     fmt.Sprintf("Deadline: %s - %s", r.Company, r.Role),
		Description: desc,
		Start:       start,
		End:         start.Add(deadlineDurationMinutes * time.Minute),
		TimeZone:    r.TimeZone,
		Reminders: []EventReminder{
			{Method: "popup", Minutes: DeadlinePopupMinutes},
			{Method: "email", Minutes: DayBeforeEmailMinutes},
		},
	}
}

// EventPatch carries the fields of an event to change. Nil fields are left alone.
type EventPatch struct {
	Summary     *string    `json:"summary,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p *EventPatch) IsEmpty() bool {
	return p.Summary == nil && p.Description == nil && p.Location == nil && p.Start == nil && p.End == nil
}

// Validate checks the patch is consistent
func (p *EventPatch) Validate() error {
	if p.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if p.Start != nil && p.End != nil && p.End.Before(*p.Start) {
		return fmt.Errorf("%w: end must not be before start", ErrInvalidInput)
	}
	return nil
}

// EventRange bounds a listing of events
type EventRange struct {
	TimeMin time.Time
	TimeMax time.Time
}
