package domain

import (
	"net/url"
	"time"
)

// CallbackOutcome is the enumerated result of an OAuth callback.
// It is the only detail about a callback that reaches the end user.
type CallbackOutcome string

const (
	OutcomeSuccess         CallbackOutcome = "success"
	OutcomeDenied          CallbackOutcome = "denied"
	OutcomeInvalidParams   CallbackOutcome = "invalid_params"
	OutcomeExpiredOrForged CallbackOutcome = "expired_or_forged"
	OutcomeTokenExchange   CallbackOutcome = "token_exchange"
	OutcomeSessionMismatch CallbackOutcome = "session_mismatch"
	OutcomeSaveFailed      CallbackOutcome = "save_failed"
	OutcomeFailed          CallbackOutcome = "failed"
	OutcomeConfig          CallbackOutcome = "config"
)

// errorFlags maps failure outcomes to the suffix of the error query flag
var errorFlags = map[CallbackOutcome]string{
	OutcomeDenied:          "denied",
	OutcomeInvalidParams:   "invalid",
	OutcomeExpiredOrForged: "expired",
	OutcomeTokenExchange:   "token",
	OutcomeSessionMismatch: "session",
	OutcomeSaveFailed:      "save",
	OutcomeFailed:          "failed",
	OutcomeConfig:          "config",
}

// RedirectQuery returns the query flags the UI reads after the callback redirect.
// Unknown outcomes map to the generic failure flag.
func (o CallbackOutcome) RedirectQuery() url.Values {
	if o == OutcomeSuccess {
		return url.Values{"google_connected": {"true"}}
	}
	flag, ok := errorFlags[o]
	if !ok {
		flag = errorFlags[OutcomeFailed]
	}
	return url.Values{"error": {"google_auth_" + flag}}
}

// StateClaims is what a verified state token yields
type StateClaims struct {
	SubjectID string
	IssuedAt  time.Time
}

// ChannelFailure is the enumerated reason a channel verification failed
type ChannelFailure string

const (
	ChannelRateLimited    ChannelFailure = "rate_limited"
	ChannelInvalidFormat  ChannelFailure = "invalid_format"
	ChannelTargetNotFound ChannelFailure = "target_not_found"
	ChannelBlocked        ChannelFailure = "blocked"
	ChannelSendFailed     ChannelFailure = "send_failed"
)

// Message returns the user-facing text for a channel failure
func (f ChannelFailure) Message() string {
	switch f {
	case ChannelRateLimited:
		return "Too many verification attempts. Please try again later."
	case ChannelInvalidFormat:
		return "Chat ID must be a numeric Telegram chat identifier."
	case ChannelTargetNotFound:
		return "Chat ID not found. Please make sure you started a conversation with our bot first."
	case ChannelBlocked:
		return "Bot was blocked by the user. Please unblock the bot and try again."
	default:
		return "Failed to send verification message."
	}
}
