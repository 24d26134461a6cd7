package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/micropost/micropost/internal/middleware"
	"github.com/micropost/micropost/internal/service"
	"github.com/micropost/micropost/internal/view"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	users         *service.UserService
	views         *view.Views
	logger        *slog.Logger
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler. secureCookies should be
// true whenever the app is served over HTTPS.
func NewAuthHandler(users *service.UserService, views *view.Views, logger *slog.Logger, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		users:         users,
		views:         views,
		logger:        logger,
		secureCookies: secureCookies,
	}
}

// ShowIndex renders the registration page.
// GET / and GET /register
func (h *AuthHandler) ShowIndex(w http.ResponseWriter, r *http.Request) {
	_ = h.views.Render(w, http.StatusOK, "index.html", nil)
}

// ShowLogin renders the login page.
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	_ = h.views.Render(w, http.StatusOK, "login.html", nil)
}

// Register handles POST /register. On success it sets the session
// cookie and renders a confirmation page.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	age, _ := strconv.Atoi(r.PostFormValue("age"))
	input := service.RegisterInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Username: r.PostFormValue("username"),
		Name:     r.PostFormValue("name"),
		Age:      age,
	}

	user, token, err := h.users.Register(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrEmailTaken):
			http.Error(w, "user already exists", http.StatusConflict)
		default:
			h.logger.Error("registration failed",
				slog.String("request_id", middleware.GetRequestID(r.Context())),
				slog.String("error", err.Error()),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("user registered",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("user_id", user.ID),
	)

	setSessionCookie(w, token, h.secureCookies)
	_ = h.views.Render(w, http.StatusOK, "registered.html", user)
}

// Login handles POST /login. A credential failure redirects back to
// the login page without setting a cookie; success sets the cookie and
// redirects to the profile.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	user, token, err := h.users.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		// Hashing or storage fault: a server problem, not "login failed".
		h.logger.Error("login fault",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.logger.Info("user logged in",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("user_id", user.ID),
	)

	setSessionCookie(w, token, h.secureCookies)
	http.Redirect(w, r, "/profile", http.StatusFound)
}

// Logout handles GET /logout: clears the session cookie and redirects
// to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.secureCookies)
	http.Redirect(w, r, "/login", http.StatusFound)
}
