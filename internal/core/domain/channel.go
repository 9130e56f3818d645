package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultBotUsername is reported when the messaging provider cannot be asked for its own name
const DefaultBotUsername = "JobDashboardBot"

var channelIDPattern = regexp.MustCompile(`^-?[0-9]{1,15}$`)

// NormalizeChannelID trims a user-supplied chat id and checks its syntax.
// Chat ids are signed integers of at most 15 digits; groups are negative.
func NormalizeChannelID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if !channelIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: chat id must be numeric", ErrInvalidInput)
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: chat id out of range", ErrInvalidInput)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: chat id must not be zero", ErrInvalidInput)
	}
	return strconv.FormatInt(n, 10), nil
}

// ParseMode selects how the messaging provider formats a message
type ParseMode string

const (
	ParseModeMarkdown   ParseMode = "Markdown"
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
	ParseModeHTML       ParseMode = "HTML"
)

// IsValid reports whether the parse mode is supported
func (m ParseMode) IsValid() bool {
	switch m {
	case ParseModeMarkdown, ParseModeMarkdownV2, ParseModeHTML:
		return true
	}
	return false
}

// ChannelMetadata is returned to the UI after a channel is verified
type ChannelMetadata struct {
	BotUsername string `json:"botUsername"`
	ChatID      string `json:"chatId"`
}

// ChannelVerification is the result of a verification attempt.
// Failure is empty on success.
type ChannelVerification struct {
	Success  bool             `json:"success"`
	Failure  ChannelFailure   `json:"failure,omitempty"`
	Metadata *ChannelMetadata `json:"channelMetadata,omitempty"`
}

// SendRequest is a message to a verified channel
type SendRequest struct {
	ChatID    string    `json:"chatId"`
	Message   string    `json:"message"`
	ParseMode ParseMode `json:"parseMode,omitempty"`
}

// SendResult identifies a delivered message
type SendResult struct {
	Success   bool  `json:"success"`
	MessageID int64 `json:"messageId"`
}
