package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/micropost/micropost/internal/metrics"
	"github.com/micropost/micropost/internal/model"
	"github.com/micropost/micropost/internal/repository"
)

// Post service errors.
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrNotOwner       = errors.New("not the post owner")
	ErrEmptyContent   = errors.New("post content is empty")
	ErrContentTooLong = errors.New("post content too long")
)

// MaxContentLength is the maximum post content length in runes.
const MaxContentLength = 1000

// PostService handles post creation, editing and like toggling.
type PostService struct {
	posts    PostStore
	profiles ProfileCache
	metrics  metrics.Recorder
}

// NewPostService creates a new PostService.
func NewPostService(posts PostStore, profiles ProfileCache, recorder metrics.Recorder) *PostService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PostService{
		posts:    posts,
		profiles: profiles,
		metrics:  recorder,
	}
}

// CreatePost creates a post owned by the given user.
func (s *PostService) CreatePost(ctx context.Context, userID, content string) (*model.Post, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &model.Post{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Content:   content,
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.invalidateProfile(ctx, userID)
	s.metrics.IncPostCreated()
	return post, nil
}

// ToggleLike flips membership of userID in the post's like set and
// persists the result. Returns true if the user is a liker afterwards.
// Repeated identical calls alternate state (toggle semantics, not
// idempotent). The read-modify-write is not serialized: concurrent
// toggles by distinct users are independent, while a user racing
// themselves may land either way; that inconsistency is accepted.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return false, err
	}

	liked := post.ToggleLike(userID)

	if err := s.posts.SavePost(ctx, post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return false, ErrPostNotFound
		}
		return false, fmt.Errorf("save post: %w", err)
	}

	s.invalidateProfile(ctx, post.UserID)
	s.metrics.IncLikeToggled(liked)
	return liked, nil
}

// GetPostForEdit loads a post for the edit form, enforcing ownership.
func (s *PostService) GetPostForEdit(ctx context.Context, postID, userID string) (*model.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrNotOwner
	}
	return post, nil
}

// UpdatePost overwrites a post's content. Only the owner may edit.
func (s *PostService) UpdatePost(ctx context.Context, postID, userID, content string) (*model.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrNotOwner
	}

	content, err = normalizeContent(content)
	if err != nil {
		return nil, err
	}

	post.Content = content
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.SavePost(ctx, post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("save post: %w", err)
	}

	s.invalidateProfile(ctx, post.UserID)
	s.metrics.IncPostEdited()
	return post, nil
}

func (s *PostService) getPost(ctx context.Context, postID string) (*model.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *PostService) invalidateProfile(ctx context.Context, userID string) {
	if s.profiles == nil {
		return
	}
	// Best effort; the TTL bounds staleness if the delete fails.
	_ = s.profiles.InvalidateProfile(ctx, userID)
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if len([]rune(content)) > MaxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}
