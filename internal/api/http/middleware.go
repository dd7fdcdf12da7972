package http

import (
	"net/http"
	"strings"

	"dojo-membership-backend/internal/domain"
	"dojo-membership-backend/internal/security"
)

// AuthMiddleware validates the bearer token and attaches the caller's
// identity to the request context. The workflow itself never authenticates;
// it trusts the identity established here.
func AuthMiddleware(tokenManager security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeErrorMessage(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokenManager.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeErrorMessage(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeErrorMessage(w, http.StatusUnauthorized, "access token required")
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// requireBoard wraps a handler so only board members reach it.
func requireBoard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !claims.HasRole(string(domain.UserRoleBoard)) {
			writeErrorMessage(w, http.StatusForbidden, "board membership required")
			return
		}
		next(w, r)
	}
}
