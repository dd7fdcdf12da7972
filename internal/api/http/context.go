package http

import (
	"context"

	"dojo-membership-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "user_claims"

// withClaims stores the authenticated user's claims on the request context.
func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// claimsFromContext returns the authenticated user's claims, if any.
func claimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims, ok
}
