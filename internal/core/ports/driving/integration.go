package driving

import (
	"context"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
)

// IntegrationService exposes the subject's integrations to the settings panel.
type IntegrationService interface {
	// List returns the subject's integrations without credentials.
	List(ctx context.Context, subjectID string) ([]*domain.IntegrationStatus, error)

	// UpdateSettings replaces the settings of an existing integration.
	UpdateSettings(ctx context.Context, subjectID string, provider domain.Provider, settings domain.Settings) (*domain.IntegrationStatus, error)

	// Disconnect clears the integration's credentials. The record is kept.
	Disconnect(ctx context.Context, subjectID string, provider domain.Provider) error
}
