package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/micropost/micropost/internal/cache"
	"github.com/micropost/micropost/internal/model"
	"github.com/micropost/micropost/internal/testutil"
)

func TestProfileRoundTrip(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("cache"))
	profile := &model.Profile{
		User:  user,
		Posts: []*model.Post{testutil.NewTestPost(t, user.ID)},
	}

	if err := c.SetProfile(ctx, user.ID, profile, time.Minute); err != nil {
		t.Fatalf("SetProfile() error = %v", err)
	}

	got, err := c.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.User.Email != user.Email {
		t.Errorf("Email = %q, want %q", got.User.Email, user.Email)
	}
	if len(got.Posts) != 1 {
		t.Errorf("post count = %d, want 1", len(got.Posts))
	}
}

func TestProfileMiss(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if _, err := c.GetProfile(ctx, ulid.Make().String()); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("GetProfile() error = %v, want cache.ErrCacheMiss", err)
	}
}

func TestInvalidateProfile(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("invalidate"))
	profile := &model.Profile{User: user}

	if err := c.SetProfile(ctx, user.ID, profile, time.Minute); err != nil {
		t.Fatalf("SetProfile() error = %v", err)
	}
	if err := c.InvalidateProfile(ctx, user.ID); err != nil {
		t.Fatalf("InvalidateProfile() error = %v", err)
	}
	if _, err := c.GetProfile(ctx, user.ID); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("GetProfile() after invalidate error = %v, want cache.ErrCacheMiss", err)
	}
}

func TestUndecodableEntryIsAMiss(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	userID := ulid.Make().String()
	if err := c.Client().Set(ctx, "profile:"+userID, "not-json{", time.Minute).Err(); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	if _, err := c.GetProfile(ctx, userID); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("GetProfile() error = %v, want cache.ErrCacheMiss", err)
	}
}

// ============================================================================
// Test Environment Setup
// ============================================================================

func newCacheTestEnv(t *testing.T) (context.Context, *cache.Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := cache.New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}
