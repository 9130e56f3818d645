package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driving"
)

// Ensure channelService implements ChannelService
var _ driving.ChannelService = (*channelService)(nil)

const verifyKeyPrefix = "channel-verify:"

// ChannelServiceConfig holds configuration for the channel verifier.
type ChannelServiceConfig struct {
	// Messenger is nil when the messaging integration is not configured.
	Messenger driven.Messenger

	Store    driven.IntegrationStore
	Limiter  driven.RateLimiter
	Codec    driven.SecretCodec
	Recorder driven.Recorder
	Logger   *slog.Logger
}

type channelService struct {
	messenger driven.Messenger
	store     driven.IntegrationStore
	limiter   driven.RateLimiter
	codec     driven.SecretCodec
	recorder  driven.Recorder
	logger    *slog.Logger
}

// NewChannelService creates a new channel verifier.
func NewChannelService(cfg ChannelServiceConfig) driving.ChannelService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = driven.NopRecorder{}
	}
	return &channelService{
		messenger: cfg.Messenger,
		store:     cfg.Store,
		limiter:   cfg.Limiter,
		codec:     cfg.Codec,
		recorder:  recorder,
		logger:    logger,
	}
}

// VerifyAndConnect rate-limits, validates, sends the welcome message, and
// only then stores the channel.
func (s *channelService) VerifyAndConnect(ctx context.Context, subjectID, chatID string) (*domain.ChannelVerification, error) {
	if s.messenger == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if subjectID == "" {
		return nil, domain.ErrUnauthorized
	}
	subject := s.codec.HashForLogging(subjectID)

	allowed, err := s.limiter.Allow(ctx, verifyKeyPrefix+subjectID)
	if err != nil {
		s.logger.Error("rate limiter unavailable, rejecting verification", "subject", subject, "error", err)
		allowed = false
	}
	if !allowed {
		return s.fail(domain.ChannelRateLimited), nil
	}

	id, err := domain.NormalizeChannelID(chatID)
	if err != nil {
		return s.fail(domain.ChannelInvalidFormat), nil
	}
	chat := s.codec.HashForLogging(id)

	if _, err := s.messenger.SendMessage(ctx, id, domain.WelcomeMessage, string(domain.ParseModeMarkdown)); err != nil {
		failure := domain.ChannelSendFailed
		switch {
		case errors.Is(err, domain.ErrChannelNotFound):
			failure = domain.ChannelTargetNotFound
		case errors.Is(err, domain.ErrChannelBlocked):
			failure = domain.ChannelBlocked
		}
		s.logger.Warn("channel verification send failed",
			"subject", subject,
			"chat", chat,
			"failure", failure,
			"error", err,
		)
		return s.fail(failure), nil
	}

	settings := domain.DefaultMessagingSettings(id)
	existing, err := s.store.Get(ctx, subjectID, domain.ProviderTelegram)
	switch {
	case err == nil:
		if existing.Settings.Messaging != nil {
			settings.Messaging.Notifications = existing.Settings.Messaging.Notifications
		}
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("load channel integration: %w", err)
	}

	record := &domain.IntegrationRecord{
		SubjectID: subjectID,
		Provider:  domain.ProviderTelegram,
		Connected: true,
		Settings:  settings,
	}
	if err := s.store.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("save channel integration: %w", err)
	}

	username, err := s.messenger.BotUsername(ctx)
	if err != nil || username == "" {
		username = domain.DefaultBotUsername
	}

	s.logger.Info("channel connected", "subject", subject, "chat", chat)
	s.recorder.ChannelVerification("success")
	return &domain.ChannelVerification{
		Success: true,
		Metadata: &domain.ChannelMetadata{
			BotUsername: username,
			ChatID:      id,
		},
	}, nil
}

func (s *channelService) fail(f domain.ChannelFailure) *domain.ChannelVerification {
	s.recorder.ChannelVerification(string(f))
	return &domain.ChannelVerification{Failure: f}
}

// Send delivers a message to the subject's own verified channel.
func (s *channelService) Send(ctx context.Context, subjectID string, req domain.SendRequest) (*domain.SendResult, error) {
	if s.messenger == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if subjectID == "" {
		return nil, domain.ErrUnauthorized
	}
	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	mode := req.ParseMode
	if mode == "" {
		mode = domain.ParseModeMarkdown
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unsupported parse mode %q", domain.ErrInvalidInput, mode)
	}
	id, err := domain.NormalizeChannelID(req.ChatID)
	if err != nil {
		return nil, err
	}

	record, err := s.store.Get(ctx, subjectID, domain.ProviderTelegram)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("load channel integration: %w", err)
	}
	if !record.Connected || record.Settings.Messaging == nil || record.Settings.Messaging.ChannelID != id {
		s.logger.Warn("send to unverified chat rejected", "subject", s.codec.HashForLogging(subjectID))
		return nil, domain.ErrForbidden
	}

	messageID, err := s.messenger.SendMessage(ctx, id, req.Message, string(mode))
	s.recorder.MessageSent(domain.NotificationDirect, err == nil)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &domain.SendResult{Success: true, MessageID: messageID}, nil
}
