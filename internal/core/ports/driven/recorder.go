package driven

import "github.com/Redtoridefire/Job-Dashboard/internal/core/domain"

// Recorder receives counters about integration activity.
type Recorder interface {
	CallbackOutcome(outcome domain.CallbackOutcome)
	TokenRefresh(result string)
	ChannelVerification(result string)
	MessageSent(kind domain.NotificationKind, ok bool)
}

// Token refresh results
const (
	RefreshResultFresh     = "fresh"
	RefreshResultRefreshed = "refreshed"
	RefreshResultFailed    = "failed"
	RefreshResultMissing   = "not_connected"
)

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) CallbackOutcome(domain.CallbackOutcome)    {}
func (NopRecorder) TokenRefresh(string)                       {}
func (NopRecorder) ChannelVerification(string)                {}
func (NopRecorder) MessageSent(domain.NotificationKind, bool) {}
