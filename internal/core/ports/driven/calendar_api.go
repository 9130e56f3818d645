package driven

import (
	"context"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
)

// CalendarAPI manages events on the subject's primary calendar.
// Every call takes a valid plaintext access token from the refresh manager.
type CalendarAPI interface {
	CreateEvent(ctx context.Context, accessToken string, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
	GetEvent(ctx context.Context, accessToken, eventID string) (*domain.CalendarEvent, error)
	UpdateEvent(ctx context.Context, accessToken, eventID string, patch *domain.EventPatch) (*domain.CalendarEvent, error)

	// DeleteEvent removes an event. Deleting an event that no longer exists is not an error.
	DeleteEvent(ctx context.Context, accessToken, eventID string) error

	ListEvents(ctx context.Context, accessToken string, r domain.EventRange) ([]*domain.CalendarEvent, error)
}
