// Package service provides business logic for the application.
package service

import (
	"context"
	"time"

	"github.com/micropost/micropost/internal/model"
)

// UserStore is the persistence collaborator contract for users.
// Implemented by *repository.Repository; tests substitute in-memory fakes.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserWithPosts(ctx context.Context, id string) (*model.User, []*model.Post, error)
}

// PostStore is the persistence collaborator contract for posts.
type PostStore interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id string) (*model.Post, error)
	SavePost(ctx context.Context, post *model.Post) error
}

// ProfileCache caches the expanded profile view. Implementations must
// return cache.ErrCacheMiss for absent entries; all cache failures are
// treated as misses by the services.
type ProfileCache interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	SetProfile(ctx context.Context, userID string, profile *model.Profile, ttl time.Duration) error
	InvalidateProfile(ctx context.Context, userID string) error
}
