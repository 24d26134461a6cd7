package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/micropost/micropost/internal/auth"
)

func newSessionMiddleware(codec *auth.Codec) func(http.Handler) http.Handler {
	return Session(SessionConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Codec:  codec,
	})
}

// echoHandler records the claims the middleware attached, if any.
func echoHandler(got **auth.SessionClaims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = auth.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestSession_NoCookieRedirectsToLogin(t *testing.T) {
	t.Parallel()

	codec := auth.NewCodec("test-secret", time.Hour)
	var claims *auth.SessionClaims
	handler := newSessionMiddleware(codec)(echoHandler(&claims))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %s", loc)
	}
	if claims != nil {
		t.Error("handler should not run for unauthenticated request")
	}
}

func TestSession_TamperedTokenRedirectsToLogin(t *testing.T) {
	t.Parallel()

	codec := auth.NewCodec("test-secret", time.Hour)
	var claims *auth.SessionClaims
	handler := newSessionMiddleware(codec)(echoHandler(&claims))

	other := auth.NewCodec("other-secret", time.Hour)
	token, err := other.Issue("eve@example.com", "user-evil")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("expected 302, got %d", rec.Code)
	}
	if claims != nil {
		t.Error("no identity must be attached for a forged token")
	}
}

func TestSession_ExpiredTokenRedirectsToLogin(t *testing.T) {
	t.Parallel()

	// Issue with an already-elapsed TTL, verify with the same secret.
	expiredIssuer := auth.NewCodec("test-secret", -time.Minute)
	token, err := expiredIssuer.Issue("alice@example.com", "user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	codec := auth.NewCodec("test-secret", time.Hour)
	var claims *auth.SessionClaims
	handler := newSessionMiddleware(codec)(echoHandler(&claims))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("expected 302 for expired token, got %d", rec.Code)
	}
	if claims != nil {
		t.Error("no identity must be attached for an expired token")
	}
}

func TestSession_ValidTokenAttachesClaims(t *testing.T) {
	t.Parallel()

	codec := auth.NewCodec("test-secret", time.Hour)
	var claims *auth.SessionClaims
	handler := newSessionMiddleware(codec)(echoHandler(&claims))

	token, err := codec.Issue("alice@example.com", "user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if claims == nil {
		t.Fatal("expected claims attached to context")
	}
	if claims.UserID != "user-123" || claims.Email != "alice@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}
