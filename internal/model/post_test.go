package model

import "testing"

func TestToggleLikeAlternates(t *testing.T) {
	t.Parallel()

	post := &Post{ID: "p1", Likes: []string{}}

	if !post.ToggleLike("u1") {
		t.Error("first toggle should add the liker")
	}
	if !post.LikedBy("u1") {
		t.Error("u1 should be a liker after the first toggle")
	}
	if post.ToggleLike("u1") {
		t.Error("second toggle should remove the liker")
	}
	if post.LikedBy("u1") {
		t.Error("u1 should not be a liker after the second toggle")
	}
	if !post.ToggleLike("u1") {
		t.Error("third toggle should add the liker again")
	}
}

func TestToggleLikeIndependentUsers(t *testing.T) {
	t.Parallel()

	post := &Post{ID: "p1", Likes: []string{"u1", "u2", "u3"}}

	// Removing a middle element keeps the rest intact.
	if post.ToggleLike("u2") {
		t.Error("toggle for existing liker should remove them")
	}
	if post.LikeCount() != 2 {
		t.Errorf("LikeCount() = %d, want 2", post.LikeCount())
	}
	if !post.LikedBy("u1") || !post.LikedBy("u3") {
		t.Errorf("Likes = %v, want u1 and u3 kept", post.Likes)
	}
}
