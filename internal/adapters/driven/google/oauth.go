package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure OAuthProvider implements the interface.
var _ driven.OAuthProvider = (*OAuthProvider)(nil)

// OAuthConfig holds the OAuth client registration
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Endpoint overrides Google's endpoints. Zero uses the production endpoints.
	Endpoint oauth2.Endpoint

	// HTTPClient is used for token requests. Nil uses a client with a 30s timeout.
	HTTPClient *http.Client
}

// OAuthProvider speaks Google's authorization-code and refresh grants.
type OAuthProvider struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewOAuthProvider creates a provider requesting offline access to calendar events.
func NewOAuthProvider(cfg OAuthConfig) *OAuthProvider {
	endpoint := cfg.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = googleoauth.Endpoint
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &OAuthProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{calendar.CalendarEventsScope},
		},
		httpClient: httpClient,
	}
}

// AuthCodeURL builds the consent URL. Consent is forced so Google
// always returns a refresh token.
func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for tokens.
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*driven.OAuthToken, error) {
	tok, err := p.config.Exchange(p.clientContext(ctx), code)
	if err != nil {
		return nil, providerError(err)
	}
	return toOAuthToken(tok, ""), nil
}

// Refresh trades a refresh token for a new access token.
// RefreshToken in the result is empty unless Google rotated it.
func (p *OAuthProvider) Refresh(ctx context.Context, refreshToken string) (*driven.OAuthToken, error) {
	src := p.config.TokenSource(p.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, providerError(err)
	}
	return toOAuthToken(tok, refreshToken), nil
}

func (p *OAuthProvider) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

func toOAuthToken(tok *oauth2.Token, previousRefresh string) *driven.OAuthToken {
	out := &driven.OAuthToken{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
	}
	if tok.RefreshToken != previousRefresh {
		out.RefreshToken = tok.RefreshToken
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		out.Scope = scope
	}
	switch {
	case tok.ExpiresIn > 0:
		out.ExpiresIn = time.Duration(tok.ExpiresIn) * time.Second
	case !tok.Expiry.IsZero():
		out.ExpiresIn = time.Until(tok.Expiry).Round(time.Second)
	}
	return out
}

// providerError converts oauth2 failures into domain.ProviderError.
// The token endpoint's error body never carries credentials.
func providerError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		pe := &domain.ProviderError{
			Provider:    domain.ProviderGoogleCalendar,
			Code:        re.ErrorCode,
			Description: re.ErrorDescription,
		}
		if re.Response != nil {
			pe.StatusCode = re.Response.StatusCode
		}
		return pe
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrProvider, domain.ProviderGoogleCalendar, err)
}
