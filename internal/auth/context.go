package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// sessionContextKey is the context key for storing session claims.
const sessionContextKey contextKey = "session_claims"

// ContextWithSession adds session claims to the context.
func ContextWithSession(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, sessionContextKey, claims)
}

// SessionFromContext retrieves session claims from the context.
// Returns nil if the request is unauthenticated.
func SessionFromContext(ctx context.Context) *SessionClaims {
	claims, ok := ctx.Value(sessionContextKey).(*SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// MustSessionFromContext retrieves session claims from the context.
// Panics if not present (use only behind the session middleware).
func MustSessionFromContext(ctx context.Context) *SessionClaims {
	claims := SessionFromContext(ctx)
	if claims == nil {
		panic("session claims not found - ensure session middleware is applied")
	}
	return claims
}

// UserIDFromContext is a convenience function to get the authenticated
// user ID. Returns empty string if not authenticated.
func UserIDFromContext(ctx context.Context) string {
	claims := SessionFromContext(ctx)
	if claims == nil {
		return ""
	}
	return claims.UserID
}
