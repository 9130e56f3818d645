package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driving"
)

// Ensure accessTokenService implements AccessTokenService
var _ driving.AccessTokenService = (*accessTokenService)(nil)

// AccessTokenServiceConfig holds configuration for the token refresh manager.
type AccessTokenServiceConfig struct {
	// Provider is nil when the calendar integration is not configured;
	// stored tokens are then served until they expire.
	Provider driven.OAuthProvider

	Store    driven.IntegrationStore
	Codec    driven.SecretCodec
	Recorder driven.Recorder
	Logger   *slog.Logger

	// Buffer defaults to domain.RefreshBuffer.
	Buffer time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

type accessTokenService struct {
	provider driven.OAuthProvider
	store    driven.IntegrationStore
	codec    driven.SecretCodec
	recorder driven.Recorder
	logger   *slog.Logger
	buffer   time.Duration
	now      func() time.Time

	// flights collapses concurrent refreshes for one subject
	flights singleflight.Group
}

// NewAccessTokenService creates a new token refresh manager.
func NewAccessTokenService(cfg AccessTokenServiceConfig) driving.AccessTokenService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = driven.NopRecorder{}
	}
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = domain.RefreshBuffer
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &accessTokenService{
		provider: cfg.Provider,
		store:    cfg.Store,
		codec:    cfg.Codec,
		recorder: recorder,
		logger:   logger,
		buffer:   buffer,
		now:      now,
	}
}

// GetValidAccessToken returns a usable access token, refreshing it first when it is
// expired or inside the refresh buffer.
func (s *accessTokenService) GetValidAccessToken(ctx context.Context, subjectID string) (string, error) {
	record, err := s.load(ctx, subjectID)
	if err != nil || record == nil {
		return "", err
	}

	if !record.NeedsRefresh(s.now(), s.buffer) {
		token, err := s.codec.Decrypt(*record.AccessTokenCiphertext)
		if err == nil {
			s.recorder.TokenRefresh(driven.RefreshResultFresh)
			return token, nil
		}
		s.logger.Warn("stored access token unreadable, refreshing",
			"subject", s.codec.HashForLogging(subjectID),
			"error", err,
		)
	}

	v, err, _ := s.flights.Do(subjectID, func() (any, error) {
		return s.refresh(ctx, subjectID)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// load returns the subject's usable calendar record, or nil when there is none.
func (s *accessTokenService) load(ctx context.Context, subjectID string) (*domain.IntegrationRecord, error) {
	record, err := s.store.Get(ctx, subjectID, domain.ProviderGoogleCalendar)
	if errors.Is(err, domain.ErrNotFound) {
		s.recorder.TokenRefresh(driven.RefreshResultMissing)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load calendar integration: %w", err)
	}
	if !record.HasAccessToken() {
		s.recorder.TokenRefresh(driven.RefreshResultMissing)
		return nil, nil
	}
	return record, nil
}

// refresh runs inside the subject's flight. It reloads the record first since
// a previous flight may already have stored a fresh token.
func (s *accessTokenService) refresh(ctx context.Context, subjectID string) (string, error) {
	subject := s.codec.HashForLogging(subjectID)

	record, err := s.load(ctx, subjectID)
	if err != nil || record == nil {
		return "", err
	}
	if !record.NeedsRefresh(s.now(), s.buffer) {
		if token, err := s.codec.Decrypt(*record.AccessTokenCiphertext); err == nil {
			s.recorder.TokenRefresh(driven.RefreshResultFresh)
			return token, nil
		}
	}

	if s.provider == nil {
		s.logger.Warn("access token needs refresh but calendar provider is not configured", "subject", subject)
		s.recorder.TokenRefresh(driven.RefreshResultFailed)
		return "", nil
	}
	if record.RefreshTokenCiphertext == nil || *record.RefreshTokenCiphertext == "" {
		s.logger.Warn("access token expired and no refresh token stored", "subject", subject)
		s.recorder.TokenRefresh(driven.RefreshResultFailed)
		return "", nil
	}

	refreshToken, err := s.codec.Decrypt(*record.RefreshTokenCiphertext)
	if err != nil {
		s.logger.Error("stored refresh token unreadable", "subject", subject, "error", err)
		s.recorder.TokenRefresh(driven.RefreshResultFailed)
		return "", nil
	}

	token, err := s.provider.Refresh(ctx, refreshToken)
	if err != nil || token == nil || token.AccessToken == "" {
		s.logger.Warn("access token refresh failed", "subject", subject, "error", err)
		s.recorder.TokenRefresh(driven.RefreshResultFailed)
		return "", nil
	}

	update, err := s.sealRefresh(token)
	if err != nil {
		s.logger.Error("failed to encrypt refreshed tokens", "subject", subject, "error", err)
		s.recorder.TokenRefresh(driven.RefreshResultFailed)
		return "", nil
	}

	// The new token is usable even if persisting it fails; the next call refreshes again.
	if err := s.store.UpdateTokens(ctx, subjectID, domain.ProviderGoogleCalendar, *update); err != nil {
		s.logger.Error("failed to persist refreshed access token", "subject", subject, "error", err)
	}

	s.logger.Info("access token refreshed",
		"subject", subject,
		"refresh_token_rotated", update.RefreshTokenCiphertext != nil,
		"expires_at", update.ExpiresAt,
	)
	s.recorder.TokenRefresh(driven.RefreshResultRefreshed)
	return token.AccessToken, nil
}

func (s *accessTokenService) sealRefresh(token *driven.OAuthToken) (*domain.TokenUpdate, error) {
	access, err := s.codec.Encrypt(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("encrypt access token: %w", err)
	}
	update := &domain.TokenUpdate{
		AccessTokenCiphertext: access,
		ExpiresAt:             s.now().Add(tokenLifetime(token)),
	}
	if token.RefreshToken != "" {
		rt, err := s.codec.Encrypt(token.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("encrypt refresh token: %w", err)
		}
		update.RefreshTokenCiphertext = &rt
	}
	return update, nil
}
