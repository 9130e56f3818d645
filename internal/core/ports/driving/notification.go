package driving

import (
	"context"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
)

// NotificationService sends templated notifications to the subject's channel.
// Each method reports whether a message was sent; a disconnected channel or a
// disabled toggle is not an error.
type NotificationService interface {
	InterviewReminder(ctx context.Context, subjectID string, r *domain.InterviewReminder) (bool, error)
	DeadlineReminder(ctx context.Context, subjectID string, r *domain.DeadlineReminder) (bool, error)
	StatusChange(ctx context.Context, subjectID string, c *domain.StatusChange) (bool, error)
}
