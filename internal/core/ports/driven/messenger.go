package driven

import "context"

// Messenger delivers messages to out-of-band channels (chat ids).
type Messenger interface {
	// SendMessage delivers text to a chat and returns the provider's message id.
	// Returns domain.ErrChannelNotFound when the chat is unknown to the bot,
	// domain.ErrChannelBlocked when the bot was blocked, and domain.ErrProvider otherwise.
	SendMessage(ctx context.Context, chatID, text, parseMode string) (int64, error)

	// BotUsername returns the bot's public username.
	BotUsername(ctx context.Context) (string, error)
}
