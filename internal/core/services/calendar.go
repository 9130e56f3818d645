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

// Ensure calendarService implements CalendarService
var _ driving.CalendarService = (*calendarService)(nil)

// CalendarServiceConfig holds configuration for calendar sync.
type CalendarServiceConfig struct {
	Tokens driving.AccessTokenService

	// API is nil when the calendar integration is not configured.
	API driven.CalendarAPI

	Store  driven.IntegrationStore
	Codec  driven.SecretCodec
	Logger *slog.Logger
}

type calendarService struct {
	tokens driving.AccessTokenService
	api    driven.CalendarAPI
	store  driven.IntegrationStore
	codec  driven.SecretCodec
	logger *slog.Logger
}

// NewCalendarService creates a new calendar sync service.
func NewCalendarService(cfg CalendarServiceConfig) driving.CalendarService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &calendarService{
		tokens: cfg.Tokens,
		api:    cfg.API,
		store:  cfg.Store,
		codec:  cfg.Codec,
		logger: logger,
	}
}

// accessToken returns a valid token or domain.ErrNotConnected.
func (s *calendarService) accessToken(ctx context.Context, subjectID string) (string, error) {
	if s.api == nil {
		return "", domain.ErrServiceUnavailable
	}
	token, err := s.tokens.GetValidAccessToken(ctx, subjectID)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", domain.ErrNotConnected
	}
	return token, nil
}

// syncSettings returns the subject's calendar sync toggles.
func (s *calendarService) syncSettings(ctx context.Context, subjectID string) (*domain.CalendarSettings, error) {
	record, err := s.store.Get(ctx, subjectID, domain.ProviderGoogleCalendar)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotConnected
	}
	if err != nil {
		return nil, fmt.Errorf("load calendar integration: %w", err)
	}
	if record.Settings.Calendar == nil {
		return domain.DefaultCalendarSettings().Calendar, nil
	}
	return record.Settings.Calendar, nil
}

// CreateInterviewEvent puts an interview on the subject's calendar.
func (s *calendarService) CreateInterviewEvent(ctx context.Context, subjectID string, req *domain.InterviewEventRequest) (*domain.CalendarEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	token, err := s.accessToken(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	settings, err := s.syncSettings(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !settings.SyncInterviews {
		return nil, domain.ErrSyncDisabled
	}

	event, err := s.api.CreateEvent(ctx, token, req.ToEvent())
	if err != nil {
		s.logger.Error("failed to create interview event", "subject", s.codec.HashForLogging(subjectID), "error", err)
		return nil, fmt.Errorf("create interview event: %w", err)
	}
	return event, nil
}

// CreateDeadlineEvent blocks out the evening of an application deadline.
func (s *calendarService) CreateDeadlineEvent(ctx context.Context, subjectID string, req *domain.DeadlineEventRequest) (*domain.CalendarEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	token, err := s.accessToken(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	settings, err := s.syncSettings(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !settings.SyncDeadlines {
		return nil, domain.ErrSyncDisabled
	}

	event, err := s.api.CreateEvent(ctx, token, req.ToEvent())
	if err != nil {
		s.logger.Error("failed to create deadline event", "subject", s.codec.HashForLogging(subjectID), "error", err)
		return nil, fmt.Errorf("create deadline event: %w", err)
	}
	return event, nil
}

func (s *calendarService) GetEvent(ctx context.Context, subjectID, eventID string) (*domain.CalendarEvent, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	token, err := s.accessToken(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return s.api.GetEvent(ctx, token, eventID)
}

func (s *calendarService) UpdateEvent(ctx context.Context, subjectID, eventID string, patch *domain.EventPatch) (*domain.CalendarEvent, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	token, err := s.accessToken(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateEvent(ctx, token, eventID, patch)
}

// DeleteEvent removes an event; an event that is already gone counts as deleted.
func (s *calendarService) DeleteEvent(ctx context.Context, subjectID, eventID string) error {
	if eventID == "" {
		return fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	token, err := s.accessToken(ctx, subjectID)
	if err != nil {
		return err
	}
	if err := s.api.DeleteEvent(ctx, token, eventID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *calendarService) ListEvents(ctx context.Context, subjectID string, r domain.EventRange) ([]*domain.CalendarEvent, error) {
	if !r.TimeMin.IsZero() && !r.TimeMax.IsZero() && r.TimeMax.Before(r.TimeMin) {
		return nil, fmt.Errorf("%w: timeMax must not be before timeMin", domain.ErrInvalidInput)
	}
	token, err := s.accessToken(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return s.api.ListEvents(ctx, token, r)
}
