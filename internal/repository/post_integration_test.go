package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/micropost/micropost/internal/repository"
	"github.com/micropost/micropost/internal/testutil"
)

func TestCreateAndGetPost(t *testing.T) {
	ctx, repo, userID := newPostTestEnv(t)

	post := testutil.NewTestPost(t, userID)
	if err := repo.CreatePost(ctx, post); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	got, err := repo.GetPostByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPostByID() error = %v", err)
	}
	if got.Content != post.Content {
		t.Errorf("Content = %q, want %q", got.Content, post.Content)
	}
	if got.Likes == nil || len(got.Likes) != 0 {
		t.Errorf("Likes = %v, want empty non-nil slice", got.Likes)
	}
}

func TestGetPostNotFound(t *testing.T) {
	ctx, repo, _ := newPostTestEnv(t)

	if _, err := repo.GetPostByID(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV"); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("GetPostByID() error = %v, want repository.ErrPostNotFound", err)
	}
}

func TestSavePostPersistsLikes(t *testing.T) {
	ctx, repo, userID := newPostTestEnv(t)

	post := testutil.NewTestPost(t, userID)
	if err := repo.CreatePost(ctx, post); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	post.Likes = []string{"liker-one", "liker-two"}
	post.Content = "edited content"
	post.UpdatedAt = time.Now().UTC()
	if err := repo.SavePost(ctx, post); err != nil {
		t.Fatalf("SavePost() error = %v", err)
	}

	got, err := repo.GetPostByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPostByID() error = %v", err)
	}
	if got.Content != "edited content" {
		t.Errorf("Content = %q, want %q", got.Content, "edited content")
	}
	if len(got.Likes) != 2 {
		t.Fatalf("like count = %d, want 2", len(got.Likes))
	}
	if !got.LikedBy("liker-one") || !got.LikedBy("liker-two") {
		t.Errorf("Likes = %v, want both likers present", got.Likes)
	}
}

func TestSavePostUnknownID(t *testing.T) {
	ctx, repo, userID := newPostTestEnv(t)

	post := testutil.NewTestPost(t, userID)
	if err := repo.SavePost(ctx, post); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("SavePost() error = %v, want repository.ErrPostNotFound", err)
	}
}

func TestListPostsByUserNewestFirst(t *testing.T) {
	ctx, repo, userID := newPostTestEnv(t)

	base := time.Now().UTC().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		post := testutil.NewTestPost(t, userID)
		post.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		post.UpdatedAt = post.CreatedAt
		if err := repo.CreatePost(ctx, post); err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
		ids = append(ids, post.ID)
	}

	posts, err := repo.ListPostsByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListPostsByUser() error = %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("post count = %d, want 3", len(posts))
	}
	// Newest first: the last created post leads.
	if posts[0].ID != ids[2] || posts[2].ID != ids[0] {
		t.Errorf("order = [%s %s %s], want newest first", posts[0].ID, posts[1].ID, posts[2].ID)
	}
}

func TestListPostsByUserEmpty(t *testing.T) {
	ctx, repo, userID := newPostTestEnv(t)

	posts, err := repo.ListPostsByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListPostsByUser() error = %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("post count = %d, want 0", len(posts))
	}
}

// ============================================================================
// Test Environment Setup
// ============================================================================

func newPostTestEnv(t *testing.T) (context.Context, *repository.Repository, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset users schema: %v", err)
	}
	if err := testutil.ResetPostsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset posts schema: %v", err)
	}

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("owner"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}

	return ctx, repo, owner.ID
}
