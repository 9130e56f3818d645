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

// Ensure integrationService implements IntegrationService
var _ driving.IntegrationService = (*integrationService)(nil)

// IntegrationServiceConfig holds configuration for the integration service.
type IntegrationServiceConfig struct {
	Store driven.IntegrationStore
	Codec driven.SecretCodec

	// Available lists the providers configured on this deployment.
	Available map[domain.Provider]bool

	Logger *slog.Logger
}

type integrationService struct {
	store     driven.IntegrationStore
	codec     driven.SecretCodec
	available map[domain.Provider]bool
	logger    *slog.Logger
}

// NewIntegrationService creates a new integration service.
func NewIntegrationService(cfg IntegrationServiceConfig) driving.IntegrationService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	available := cfg.Available
	if available == nil {
		available = map[domain.Provider]bool{}
	}
	return &integrationService{
		store:     cfg.Store,
		codec:     cfg.Codec,
		available: available,
		logger:    logger,
	}
}

// knownProviders is the order integrations are listed in
var knownProviders = []domain.Provider{domain.ProviderGoogleCalendar, domain.ProviderTelegram}

// List returns one status per known provider, connected or not.
func (s *integrationService) List(ctx context.Context, subjectID string) ([]*domain.IntegrationStatus, error) {
	records, err := s.store.List(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}

	byProvider := make(map[domain.Provider]*domain.IntegrationRecord, len(records))
	for _, r := range records {
		byProvider[r.Provider] = r
	}

	statuses := make([]*domain.IntegrationStatus, 0, len(knownProviders))
	for _, p := range knownProviders {
		var status *domain.IntegrationStatus
		if r, ok := byProvider[p]; ok {
			status = r.ToStatus()
		} else {
			status = &domain.IntegrationStatus{Provider: p, Name: p.DisplayName()}
		}
		status.Available = s.available[p]
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// UpdateSettings replaces an integration's settings.
// The chat id of a messaging integration only changes through verification.
func (s *integrationService) UpdateSettings(ctx context.Context, subjectID string, provider domain.Provider, settings domain.Settings) (*domain.IntegrationStatus, error) {
	if err := settings.Validate(provider); err != nil {
		return nil, err
	}

	record, err := s.store.Get(ctx, subjectID, provider)
	if err != nil {
		return nil, fmt.Errorf("load integration: %w", err)
	}

	if settings.Messaging != nil {
		var stored string
		if record.Settings.Messaging != nil {
			stored = record.Settings.Messaging.ChannelID
		}
		switch settings.Messaging.ChannelID {
		case "", stored, domain.MaskChannelID(stored):
			m := *settings.Messaging
			m.ChannelID = stored
			settings.Messaging = &m
		default:
			return nil, fmt.Errorf("%w: chat id can only be changed by verifying it", domain.ErrInvalidInput)
		}
	}

	if err := s.store.UpdateSettings(ctx, subjectID, provider, settings); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	record.Settings = settings
	status := record.ToStatus()
	status.Available = s.available[provider]
	return status, nil
}

// Disconnect clears the integration's credentials and keeps the row.
func (s *integrationService) Disconnect(ctx context.Context, subjectID string, provider domain.Provider) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}
	if err := s.store.Disconnect(ctx, subjectID, provider); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("disconnect integration: %w", err)
	}
	s.logger.Info("integration disconnected",
		"subject", s.codec.HashForLogging(subjectID),
		"provider", provider,
	)
	return nil
}
