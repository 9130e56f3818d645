package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driving"
)

// Ensure calendarOAuthService implements CalendarOAuthService
var _ driving.CalendarOAuthService = (*calendarOAuthService)(nil)

// defaultTokenLifetime is assumed when the provider omits expires_in.
const defaultTokenLifetime = time.Hour

// CalendarOAuthServiceConfig holds configuration for the calendar OAuth flow.
type CalendarOAuthServiceConfig struct {
	// Provider is nil when the calendar integration is not configured.
	Provider driven.OAuthProvider

	Store    driven.IntegrationStore
	Codec    driven.SecretCodec
	States   *StateTokens
	Recorder driven.Recorder
	Logger   *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

type calendarOAuthService struct {
	provider driven.OAuthProvider
	store    driven.IntegrationStore
	codec    driven.SecretCodec
	states   *StateTokens
	recorder driven.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewCalendarOAuthService creates a new calendar OAuth service.
func NewCalendarOAuthService(cfg CalendarOAuthServiceConfig) driving.CalendarOAuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = driven.NopRecorder{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &calendarOAuthService{
		provider: cfg.Provider,
		store:    cfg.Store,
		codec:    cfg.Codec,
		states:   cfg.States,
		recorder: recorder,
		logger:   logger,
		now:      now,
	}
}

func (s *calendarOAuthService) configured() bool {
	return s.provider != nil && s.states != nil && s.codec != nil
}

// Authorize issues a state token and builds the consent URL.
func (s *calendarOAuthService) Authorize(ctx context.Context, subjectID string) (*driving.AuthorizeResponse, error) {
	if !s.configured() {
		return nil, domain.ErrServiceUnavailable
	}
	if subjectID == "" {
		return nil, domain.ErrUnauthorized
	}

	state, err := s.states.Issue(subjectID)
	if err != nil {
		return nil, fmt.Errorf("issue state: %w", err)
	}

	return &driving.AuthorizeResponse{
		URL:       s.provider.AuthCodeURL(state),
		ExpiresAt: s.now().Add(s.states.TTL()),
	}, nil
}

// Callback validates the redirect, exchanges the code and stores the encrypted tokens.
func (s *calendarOAuthService) Callback(ctx context.Context, sessionSubjectID string, req driving.CallbackRequest) *driving.CallbackResult {
	outcome := s.callback(ctx, sessionSubjectID, req)
	s.recorder.CallbackOutcome(outcome)
	return &driving.CallbackResult{Outcome: outcome}
}

func (s *calendarOAuthService) callback(ctx context.Context, sessionSubjectID string, req driving.CallbackRequest) domain.CallbackOutcome {
	if !s.configured() {
		return domain.OutcomeConfig
	}

	if req.Error != "" {
		s.logger.Info("calendar authorization denied", "provider_error", req.Error)
		return domain.OutcomeDenied
	}

	if req.Code == "" || req.State == "" {
		return domain.OutcomeInvalidParams
	}

	claims, ok := s.states.Verify(ctx, req.State)
	if !ok {
		s.logger.Warn("calendar callback with invalid or expired state")
		return domain.OutcomeExpiredOrForged
	}
	subject := s.codec.HashForLogging(claims.SubjectID)

	token, err := s.provider.Exchange(ctx, req.Code)
	if err != nil {
		s.logger.Error("calendar code exchange failed", "subject", subject, "error", err)
		return domain.OutcomeTokenExchange
	}
	if token == nil || token.AccessToken == "" {
		s.logger.Error("calendar code exchange returned no access token", "subject", subject)
		return domain.OutcomeTokenExchange
	}

	if sessionSubjectID != claims.SubjectID {
		s.logger.Warn("calendar callback session does not match state",
			"subject", subject,
			"session_present", sessionSubjectID != "",
		)
		return domain.OutcomeSessionMismatch
	}

	record, err := s.buildRecord(claims.SubjectID, token)
	if err != nil {
		s.logger.Error("failed to encrypt calendar tokens", "subject", subject, "error", err)
		return domain.OutcomeFailed
	}

	existing, err := s.store.Get(ctx, claims.SubjectID, domain.ProviderGoogleCalendar)
	switch {
	case err == nil:
		if existing.Settings.Calendar != nil {
			record.Settings = existing.Settings
		}
	case errors.Is(err, domain.ErrNotFound):
	default:
		s.logger.Error("failed to load calendar integration", "subject", subject, "error", err)
		return domain.OutcomeSaveFailed
	}

	if err := s.store.Upsert(ctx, record); err != nil {
		s.logger.Error("failed to save calendar integration", "subject", subject, "error", err)
		return domain.OutcomeSaveFailed
	}

	s.logger.Info("calendar connected",
		"subject", subject,
		"refresh_token_issued", token.RefreshToken != "",
		"expires_at", *record.ExpiresAt,
	)
	return domain.OutcomeSuccess
}

// buildRecord seals the exchanged tokens into a fresh, connected record.
// An empty refresh token leaves RefreshTokenCiphertext nil so the store keeps the old one.
func (s *calendarOAuthService) buildRecord(subjectID string, token *driven.OAuthToken) (*domain.IntegrationRecord, error) {
	access, err := s.codec.Encrypt(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("encrypt access token: %w", err)
	}

	var refresh *string
	if token.RefreshToken != "" {
		ct, err := s.codec.Encrypt(token.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("encrypt refresh token: %w", err)
		}
		refresh = &ct
	}

	expiresAt := s.now().Add(tokenLifetime(token))
	return &domain.IntegrationRecord{
		SubjectID:              subjectID,
		Provider:               domain.ProviderGoogleCalendar,
		Connected:              true,
		AccessTokenCiphertext:  &access,
		RefreshTokenCiphertext: refresh,
		ExpiresAt:              &expiresAt,
		Settings:               domain.DefaultCalendarSettings(),
	}, nil
}

func tokenLifetime(token *driven.OAuthToken) time.Duration {
	if token.ExpiresIn <= 0 {
		return defaultTokenLifetime
	}
	return token.ExpiresIn
}
