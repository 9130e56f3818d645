package driving

import "context"

// AccessTokenService hands out usable calendar access tokens, refreshing them when needed.
type AccessTokenService interface {
	// GetValidAccessToken returns a plaintext access token, or "" when the subject
	// has no usable connection (absent, disconnected, or refresh failed).
	// An error is returned only when the record store itself fails.
	GetValidAccessToken(ctx context.Context, subjectID string) (string, error)
}
