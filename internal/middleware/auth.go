package middleware

import (
	"net/http"
	"strings"

	"sirtis/internal/auth"
	"sirtis/internal/httputil"
)

// publicPaths are reachable without a token.
var publicPaths = map[string]struct{}{
	"/health": {},
}

// Auth validates the Bearer token on every request and attaches the
// verified claims to the context. OPTIONS requests pass through so CORS
// pre-flights never need credentials.
func Auth(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, claims))
		})
	}
}

// RequireAdmin guards a handler behind the admin role. Runs after Auth,
// so claims are already on the context.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := httputil.GetIdentity(r)
		if claims == nil {
			httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !claims.IsAdmin() {
			httputil.RespondError(w, http.StatusForbidden, "administrator role required")
			return
		}
		next(w, r)
	}
}
