package model

import "time"

// Post represents a short text post owned by a user.
// Likes is a set of user IDs; membership is binary with no ordering
// guarantee among likers.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LikedBy reports whether the given user ID is in the like set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike flips membership of userID in the like set and returns
// true if the user is a liker after the call. Repeated identical calls
// alternate state; this is intentional toggle semantics.
func (p *Post) ToggleLike(userID string) bool {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(p.Likes, userID)
	return true
}

// LikeCount returns the number of users who liked the post.
func (p *Post) LikeCount() int {
	return len(p.Likes)
}
