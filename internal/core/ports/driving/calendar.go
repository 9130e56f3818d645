package driving

import (
	"context"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
)

// CalendarService syncs job-search events to the subject's calendar.
// Every method returns domain.ErrNotConnected when no valid access token is available.
type CalendarService interface {
	// CreateInterviewEvent returns domain.ErrSyncDisabled when interview sync is off.
	CreateInterviewEvent(ctx context.Context, subjectID string, req *domain.InterviewEventRequest) (*domain.CalendarEvent, error)

	// CreateDeadlineEvent returns domain.ErrSyncDisabled when deadline sync is off.
	CreateDeadlineEvent(ctx context.Context, subjectID string, req *domain.DeadlineEventRequest) (*domain.CalendarEvent, error)

	GetEvent(ctx context.Context, subjectID, eventID string) (*domain.CalendarEvent, error)
	UpdateEvent(ctx context.Context, subjectID, eventID string, patch *domain.EventPatch) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, subjectID, eventID string) error
	ListEvents(ctx context.Context, subjectID string, r domain.EventRange) ([]*domain.CalendarEvent, error)
}
