package driving

import (
	"context"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
)

// ChannelService binds and uses an out-of-band messaging channel.
type ChannelService interface {
	// VerifyAndConnect proves the subject can receive messages at chatID by sending one,
	// and on success stores the channel. Rejections are reported in the result;
	// an error means infrastructure failed.
	VerifyAndConnect(ctx context.Context, subjectID, chatID string) (*domain.ChannelVerification, error)

	// Send delivers a message to the subject's verified channel.
	// Returns domain.ErrForbidden unless chatID is the subject's stored channel.
	Send(ctx context.Context, subjectID string, req domain.SendRequest) (*domain.SendResult, error)
}
