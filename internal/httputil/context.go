package httputil

import (
	"context"
	"net/http"

	"sirtis/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity attaches the verified token claims to the request context.
func WithIdentity(r *http.Request, claims *models.IdentityClaims) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, claims)
	return r.WithContext(ctx)
}

// GetIdentity retrieves the verified claims, or nil when the request is
// unauthenticated.
func GetIdentity(r *http.Request) *models.IdentityClaims {
	claims, _ := r.Context().Value(identityKey).(*models.IdentityClaims)
	return claims
}

// GetUserID retrieves the authenticated user's id from context, returns
// empty string if not found.
func GetUserID(r *http.Request) string {
	if claims := GetIdentity(r); claims != nil {
		return claims.GetUserID()
	}
	return ""
}
