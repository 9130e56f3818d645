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

// Ensure notificationService implements NotificationService
var _ driving.NotificationService = (*notificationService)(nil)

// NotificationServiceConfig holds configuration for templated notifications.
type NotificationServiceConfig struct {
	// Messenger is nil when the messaging integration is not configured.
	Messenger driven.Messenger

	Store    driven.IntegrationStore
	Codec    driven.SecretCodec
	Recorder driven.Recorder
	Logger   *slog.Logger
}

type notificationService struct {
	messenger driven.Messenger
	store     driven.IntegrationStore
	codec     driven.SecretCodec
	recorder  driven.Recorder
	logger    *slog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(cfg NotificationServiceConfig) driving.NotificationService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = driven.NopRecorder{}
	}
	return &notificationService{
		messenger: cfg.Messenger,
		store:     cfg.Store,
		codec:     cfg.Codec,
		recorder:  recorder,
		logger:    logger,
	}
}

func (s *notificationService) InterviewReminder(ctx context.Context, subjectID string, r *domain.InterviewReminder) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	return s.send(ctx, subjectID, domain.NotificationInterview, r.Text())
}

func (s *notificationService) DeadlineReminder(ctx context.Context, subjectID string, r *domain.DeadlineReminder) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	return s.send(ctx, subjectID, domain.NotificationDeadline, r.Text())
}

func (s *notificationService) StatusChange(ctx context.Context, subjectID string, c *domain.StatusChange) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	return s.send(ctx, subjectID, domain.NotificationStatus, c.Text())
}

// send delivers text to the subject's channel when it is connected and the
// toggle for kind is on. Skipped sends are not errors.
func (s *notificationService) send(ctx context.Context, subjectID string, kind domain.NotificationKind, text string) (bool, error) {
	if s.messenger == nil {
		return false, nil
	}

	record, err := s.store.Get(ctx, subjectID, domain.ProviderTelegram)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load channel integration: %w", err)
	}

	m := record.Settings.Messaging
	if !record.Connected || m == nil || m.ChannelID == "" || !kind.Enabled(m.Notifications) {
		return false, nil
	}

	_, err = s.messenger.SendMessage(ctx, m.ChannelID, text, string(domain.ParseModeMarkdown))
	s.recorder.MessageSent(kind, err == nil)
	if err != nil {
		s.logger.Warn("notification not delivered",
			"subject", s.codec.HashForLogging(subjectID),
			"kind", kind,
			"error", err,
		)
		return false, fmt.Errorf("send %s notification: %w", kind, err)
	}
	return true, nil
}
