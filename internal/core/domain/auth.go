package domain

// Role is the role claim carried by a session token
type Role string

const (
	RoleAuthenticated Role = "authenticated"
	RoleService       Role = "service_role"
)

// AuthContext contains the authenticated subject for request context.
// It is resolved once at the HTTP boundary and handed to services as SubjectID.
type AuthContext struct {
	SubjectID string `json:"subject_id"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role,omitempty"`
}

// TokenClaims represents the session JWT payload issued by the auth collaborator
type TokenClaims struct {
	Subject   string `json:"sub"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// ToAuthContext converts verified claims to an AuthContext
func (c *TokenClaims) ToAuthContext() *AuthContext {
	return &AuthContext{
		SubjectID: c.Subject,
		Email:     c.Email,
		Role:      c.Role,
	}
}
