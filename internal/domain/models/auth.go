package models

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims represents the JWT claims issued by the organization's
// identity provider. Application roles are carried in app_metadata.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	Role         string         `json:"role"` // "authenticated" or "anon"
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
	SessionID    string         `json:"session_id"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *IdentityClaims) GetUserID() string {
	return c.Subject
}

// HasRole reports whether the application role is present in
// app_metadata.roles.
func (c *IdentityClaims) HasRole(role string) bool {
	roles, ok := c.AppMetadata["roles"].([]any)
	if !ok {
		return false
	}
	for _, r := range roles {
		if s, ok := r.(string); ok && s == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller holds the administrative role
// required for maintenance operations.
func (c *IdentityClaims) IsAdmin() bool {
	return c.HasRole("admin")
}
