package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/micropost/micropost/internal/auth"
	"github.com/micropost/micropost/internal/middleware"
	"github.com/micropost/micropost/internal/service"
	"github.com/micropost/micropost/internal/view"
)

// PostHandler handles post creation, like toggling and editing.
type PostHandler struct {
	posts  *service.PostService
	views  *view.Views
	logger *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService, views *view.Views, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, views: views, logger: logger}
}

// Create handles POST /post. The original implementation never
// responded on success; here creation redirects to the profile like
// every other mutation.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	post, err := h.posts.CreatePost(r.Context(), claims.UserID, r.PostFormValue("content"))
	if err != nil {
		h.writePostError(w, r, err)
		return
	}

	h.logger.Info("post created",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("post_id", post.ID),
		slog.String("user_id", claims.UserID),
	)

	http.Redirect(w, r, "/profile", http.StatusFound)
}

// Like handles GET /like/{id}: flips the caller's membership in the
// post's like set and redirects to the profile.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustSessionFromContext(r.Context())
	postID := chi.URLParam(r, "id")

	liked, err := h.posts.ToggleLike(r.Context(), postID, claims.UserID)
	if err != nil {
		h.writePostError(w, r, err)
		return
	}

	h.logger.Info("like toggled",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("post_id", postID),
		slog.String("user_id", claims.UserID),
		slog.Bool("liked", liked),
	)

	http.Redirect(w, r, "/profile", http.StatusFound)
}

// ShowEdit handles GET /edit/{id}: renders the edit form for the
// post's owner.
func (h *PostHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustSessionFromContext(r.Context())
	postID := chi.URLParam(r, "id")

	post, err := h.posts.GetPostForEdit(r.Context(), postID, claims.UserID)
	if err != nil {
		h.writePostError(w, r, err)
		return
	}

	_ = h.views.Render(w, http.StatusOK, "edit.html", post)
}

// Edit handles POST /edit/{id}: overwrites the post content for the
// owner and redirects to the profile.
func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustSessionFromContext(r.Context())
	postID := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if _, err := h.posts.UpdatePost(r.Context(), postID, claims.UserID, r.PostFormValue("content")); err != nil {
		h.writePostError(w, r, err)
		return
	}

	h.logger.Info("post edited",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("post_id", postID),
		slog.String("user_id", claims.UserID),
	)

	http.Redirect(w, r, "/profile", http.StatusFound)
}

// writePostError maps post service errors to HTTP responses.
func (h *PostHandler) writePostError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		http.Error(w, "post not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNotOwner):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, service.ErrEmptyContent), errors.Is(err, service.ErrContentTooLong):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("post operation failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
