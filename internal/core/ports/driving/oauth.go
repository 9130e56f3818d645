package driving

import (
	"context"
	"time"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
)

// CalendarOAuthService runs the authorization-code flow that connects a subject's calendar.
type CalendarOAuthService interface {
	// Authorize issues a state token for the subject and returns the consent URL.
	// Returns domain.ErrServiceUnavailable when the provider is not configured.
	Authorize(ctx context.Context, subjectID string) (*AuthorizeResponse, error)

	// Callback completes the flow. It never returns an error: every failure is
	// reduced to an enumerated outcome for the redirect.
	// sessionSubjectID is the subject of the current session, or "" if there is none.
	Callback(ctx context.Context, sessionSubjectID string, req CallbackRequest) *CallbackResult
}

// AuthorizeResponse contains the consent URL.
// @Description Response containing the OAuth authorization URL
type AuthorizeResponse struct {
	// URL is where the browser should be sent.
	URL string `json:"url" example:"https://accounts.google.com/o/oauth2/auth?client_id=..."`

	// ExpiresAt is when the embedded state stops being accepted.
	ExpiresAt time.Time `json:"expires_at"`
}

// CallbackRequest is the provider's redirect query.
type CallbackRequest struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// CallbackResult is the outcome of a callback.
type CallbackResult struct {
	Outcome domain.CallbackOutcome
}
