package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/micropost/micropost/internal/auth"
	"github.com/micropost/micropost/internal/middleware"
	"github.com/micropost/micropost/internal/service"
	"github.com/micropost/micropost/internal/view"
)

// ProfileHandler renders the authenticated user's profile.
type ProfileHandler struct {
	users  *service.UserService
	views  *view.Views
	logger *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(users *service.UserService, views *view.Views, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, views: views, logger: logger}
}

// Profile handles GET /profile.
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustSessionFromContext(r.Context())

	profile, err := h.users.Profile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Valid token for an account the store no longer knows.
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		h.logger.Error("profile load failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("user_id", claims.UserID),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	_ = h.views.Render(w, http.StatusOK, "profile.html", profile)
}
