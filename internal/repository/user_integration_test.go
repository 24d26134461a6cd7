package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/micropost/micropost/internal/repository"
	"github.com/micropost/micropost/internal/testutil"
)

func TestCreateAndGetUser(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("create"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	got, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got.Email != user.Email {
		t.Errorf("Email = %q, want %q", got.Email, user.Email)
	}
	if got.PasswordHash != user.PasswordHash {
		t.Error("stored password hash does not round-trip")
	}

	byEmail, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("ID = %q, want %q", byEmail.ID, user.ID)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	email := testutil.UniqueEmail("dup")
	first := testutil.NewTestUser(t, email)
	if err := repo.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	second := testutil.NewTestUser(t, email)
	err := repo.CreateUser(ctx, second)
	if !errors.Is(err, repository.ErrEmailExists) {
		t.Errorf("CreateUser() error = %v, want repository.ErrEmailExists", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	if _, err := repo.GetUserByID(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("GetUserByID() error = %v, want repository.ErrUserNotFound", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("GetUserByEmail() error = %v, want repository.ErrUserNotFound", err)
	}
}

func TestGetUserWithPosts(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("withposts"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		post := testutil.NewTestPost(t, user.ID)
		if err := repo.CreatePost(ctx, post); err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
	}

	got, posts, err := repo.GetUserWithPosts(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserWithPosts() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ID = %q, want %q", got.ID, user.ID)
	}
	if len(posts) != 3 {
		t.Errorf("post count = %d, want 3", len(posts))
	}
}

// ============================================================================
// Test Environment Setup
// ============================================================================

func newUserTestEnv(t *testing.T) (context.Context, *repository.Repository) {
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

	return ctx, repo
}
