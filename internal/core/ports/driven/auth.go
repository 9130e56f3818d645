package driven

import "github.com/Redtoridefire/Job-Dashboard/internal/core/domain"

// TokenVerifier validates session tokens issued by the auth collaborator.
// Sessions are created elsewhere; this service only reads them.
type TokenVerifier interface {
	// ParseToken validates a bearer token and extracts its claims.
	// Returns domain.ErrTokenExpired or domain.ErrTokenInvalid on failure.
	ParseToken(token string) (*domain.TokenClaims, error)
}
