package middleware

import (
	"log/slog"
	"net/http"

	"github.com/micropost/micropost/internal/auth"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger *slog.Logger
	Codec  *auth.Codec
	// LoginPath is where unauthenticated requests are redirected.
	LoginPath string
}

// Session returns a middleware that gates protected routes on a valid
// session cookie. Per request it is a two-state machine: a missing or
// unverifiable token short-circuits with a redirect to the login page;
// a verified token attaches the decoded claims to the request context.
// A failed verification always means "log in again", never a retry.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			claims, err := cfg.Codec.Verify(cookie.Value)
			if err != nil {
				cfg.Logger.Warn("session verification failed",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
				)
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			ctx := auth.ContextWithSession(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
