package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/micropost/micropost/internal/cache"
	"github.com/micropost/micropost/internal/model"
	"github.com/micropost/micropost/internal/repository"
)

// FakeUserStore is an in-memory UserStore for service and handler tests.
// It returns the same sentinel errors as the real repository.
type FakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by ID
	posts *FakePostStore         // optional, for GetUserWithPosts

	// CreateErr, when set, is returned by CreateUser. Used to simulate
	// a lost uniqueness race or a storage fault.
	CreateErr error
}

// NewFakeUserStore creates an empty fake user store. The post store may
// be nil if GetUserWithPosts is not exercised.
func NewFakeUserStore(posts *FakePostStore) *FakeUserStore {
	return &FakeUserStore{
		users: make(map[string]*model.User),
		posts: posts,
	}
}

// CreateUser stores the user, enforcing email uniqueness.
func (f *FakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateErr != nil {
		return f.CreateErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

// GetUserByEmail looks up a user by email.
func (f *FakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// GetUserByID looks up a user by ID.
func (f *FakeUserStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// GetUserWithPosts returns the user and their posts, newest first.
func (f *FakeUserStore) GetUserWithPosts(ctx context.Context, id string) (*model.User, []*model.Post, error) {
	user, err := f.GetUserByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var posts []*model.Post
	if f.posts != nil {
		posts = f.posts.listByUser(id)
	}
	return user, posts, nil
}

// FakePostStore is an in-memory PostStore for service and handler tests.
type FakePostStore struct {
	mu    sync.Mutex
	posts map[string]*model.Post

	// SaveErr, when set, is returned by SavePost.
	SaveErr error
}

// NewFakePostStore creates an empty fake post store.
func NewFakePostStore() *FakePostStore {
	return &FakePostStore{posts: make(map[string]*model.Post)}
}

// CreatePost stores the post.
func (f *FakePostStore) CreatePost(_ context.Context, post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	clone := clonePost(post)
	f.posts[post.ID] = clone
	return nil
}

// GetPostByID looks up a post by ID.
func (f *FakePostStore) GetPostByID(_ context.Context, id string) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return clonePost(p), nil
}

// SavePost overwrites the stored post's mutable fields.
func (f *FakePostStore) SavePost(_ context.Context, post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SaveErr != nil {
		return f.SaveErr
	}
	if _, ok := f.posts[post.ID]; !ok {
		return repository.ErrPostNotFound
	}
	f.posts[post.ID] = clonePost(post)
	return nil
}

// All returns every stored post. Test helper only.
func (f *FakePostStore) All() []*model.Post {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, clonePost(p))
	}
	return out
}

func (f *FakePostStore) listByUser(userID string) []*model.Post {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Post
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, clonePost(p))
		}
	}
	return out
}

func clonePost(p *model.Post) *model.Post {
	clone := *p
	clone.Likes = append([]string(nil), p.Likes...)
	return &clone
}

// FakeProfileCache is an in-memory ProfileCache.
type FakeProfileCache struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile

	// Invalidations counts InvalidateProfile calls.
	Invalidations int
}

// NewFakeProfileCache creates an empty fake profile cache.
func NewFakeProfileCache() *FakeProfileCache {
	return &FakeProfileCache{profiles: make(map[string]*model.Profile)}
}

// GetProfile returns a cached profile or cache.ErrCacheMiss.
func (f *FakeProfileCache) GetProfile(_ context.Context, userID string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return p, nil
}

// SetProfile stores a profile. TTL is ignored by the fake.
func (f *FakeProfileCache) SetProfile(_ context.Context, userID string, profile *model.Profile, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.profiles[userID] = profile
	return nil
}

// InvalidateProfile removes a cached profile.
func (f *FakeProfileCache) InvalidateProfile(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.profiles, userID)
	f.Invalidations++
	return nil
}
