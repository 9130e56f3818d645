package driven

import (
	"context"
	"time"
)

// OAuthToken is the result of a code exchange or refresh.
// RefreshToken is empty when the provider did not issue or rotate one.
type OAuthToken struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	ExpiresIn    time.Duration
}

// OAuthProvider speaks the authorization-code and refresh grants of one provider.
type OAuthProvider interface {
	// AuthCodeURL builds the consent URL carrying the given state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for tokens.
	// Non-2xx responses and responses without an access token return domain.ErrProvider.
	Exchange(ctx context.Context, code string) (*OAuthToken, error)

	// Refresh trades a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*OAuthToken, error)
}
