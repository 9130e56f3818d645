package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	longDateLayout = "Monday, January 2, 2006"
	clockLayout    = "03:04 PM"
)

// NotificationKind names a kind of outbound notification
type NotificationKind string

const (
	NotificationInterview NotificationKind = "interview"
	NotificationDeadline  NotificationKind = "deadline"
	NotificationStatus    NotificationKind = "status"
	NotificationDirect    NotificationKind = "direct"
	NotificationWelcome   NotificationKind = "welcome"
)

// Enabled reports whether the toggles allow this kind of notification
func (k NotificationKind) Enabled(t NotificationToggles) bool {
	switch k {
	case NotificationInterview:
		return t.Interviews
	case NotificationDeadline:
		return t.Deadlines
	case NotificationStatus:
		return t.StatusChanges
	}
	return true
}

// InterviewReminder announces an upcoming interview
type InterviewReminder struct {
	Company       string    `json:"company"`
	Role          string    `json:"role"`
	InterviewType string    `json:"interviewType"`
	ScheduledAt   time.Time `json:"dateTime"`
	Interviewers  []string  `json:"interviewerNames,omitempty"`
	MeetingLink   string    `json:"meetingLink,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// Validate checks the required fields
func (r *InterviewReminder) Validate() error {
	if strings.TrimSpace(r.Company) == "" || r.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: company and dateTime are required", ErrInvalidInput)
	}
	return nil
}

// Text renders the Markdown message body
func (r *InterviewReminder) Text() string {
	var b strings.Builder
	b.WriteString("📅 *Interview Reminder*\n\n")
	fmt.Fprintf(&b, "*%s* - %s\n\n", r.Company, r.Role)
	fmt.Fprintf(&b, "🕐 *When:* %s at %s\n", r.ScheduledAt.Format(longDateLayout), r.ScheduledAt.Format(clockLayout))
	fmt.Fprintf(&b, "📋 *Type:* %s", capitalize(r.InterviewType))
	if len(r.Interviewers) > 0 {
		fmt.Fprintf(&b, "\n👤 *Interviewer(s):* %s", strings.Join(r.Interviewers, ", "))
	}
	if r.MeetingLink != "" {
		fmt.Fprintf(&b, "\n🔗 *Meeting Link:* %s", r.MeetingLink)
	}
	if r.Notes != "" {
		fmt.Fprintf(&b, "\n\n📝 *Notes:*\n%s", r.Notes)
	}
	b.WriteString("\n\n_Good luck!_ 🍀")
	return b.String()
}

// DeadlineReminder announces an approaching application deadline
type DeadlineReminder struct {
	Company       string    `json:"company"`
	Role          string    `json:"role"`
	Deadline      time.Time `json:"deadline"`
	DaysRemaining int       `json:"daysRemaining"`
	Notes         string    `json:"notes,omitempty"`
}

// Validate checks the required fields
func (r *DeadlineReminder) Validate() error {
	if strings.TrimSpace(r.Company) == "" || r.Deadline.IsZero() {
		return fmt.Errorf("%w: company and deadline are required", ErrInvalidInput)
	}
	if r.DaysRemaining < 0 {
		return fmt.Errorf("%w: daysRemaining must not be negative", ErrInvalidInput)
	}
	return nil
}

// Text renders the Markdown message body
func (r *DeadlineReminder) Text() string {
	urgency := "📋"
	switch {
	case r.DaysRemaining <= 1:
		urgency = "🚨"
	case r.DaysRemaining <= 3:
		urgency = "⚠️"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *Application Deadline Reminder*\n\n", urgency)
	fmt.Fprintf(&b, "*%s* - %s\n\n", r.Company, r.Role)
	fmt.Fprintf(&b, "📅 *Deadline:* %s", r.Deadline.Format(longDateLayout))
	switch r.DaysRemaining {
	case 0:
		b.WriteString("\n⏰ *Due TODAY!*")
	case 1:
		b.WriteString("\n⏰ *Due TOMORROW!*")
	default:
		fmt.Fprintf(&b, "\n⏰ *%d days remaining*", r.DaysRemaining)
	}
	if r.Notes != "" {
		fmt.Fprintf(&b, "\n\n📝 *Notes:*\n%s", r.Notes)
	}
	b.WriteString("\n\n_Don't forget to submit!_")
	return b.String()
}

var statusEmojis = map[string]string{
	"new":          "🆕",
	"submitted":    "📤",
	"interviewing": "💼",
	"offer":        "🎉",
	"accepted":     "✅",
	"rejected":     "❌",
}

// StatusChange announces that an application moved between pipeline stages
type StatusChange struct {
	Company   string `json:"company"`
	Role      string `json:"role"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

// Validate checks the required fields
func (c *StatusChange) Validate() error {
	if strings.TrimSpace(c.Company) == "" || strings.TrimSpace(c.NewStatus) == "" {
		return fmt.Errorf("%w: company and newStatus are required", ErrInvalidInput)
	}
	return nil
}

// Text renders the Markdown message body
func (c *StatusChange) Text() string {
	emoji, ok := statusEmojis[c.NewStatus]
	if !ok {
		emoji = "📋"
	}
	return fmt.Sprintf("%s *Application Status Update*\n\n*%s* - %s\n\nStatus changed: _%s_ → *%s*",
		emoji, c.Company, c.Role, c.OldStatus, c.NewStatus)
}

// WelcomeMessage is sent to a channel to prove it can receive messages
const WelcomeMessage = "✅ *Job Dashboard Connected!*\n\n" +
	"Your Telegram notifications are now set up.\n\n" +
	"You'll receive notifications about:\n" +
	"• Interview reminders\n" +
	"• Application deadlines\n" +
	"• Status changes\n\n" +
	"Manage your notification preferences in the Job Dashboard settings."

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
