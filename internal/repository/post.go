package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/micropost/micropost/internal/model"
)

// ErrPostNotFound is returned when a post does not exist.
var ErrPostNotFound = errors.New("post not found")

// CreatePost inserts a new post into the database.
func (r *Repository) CreatePost(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (id, user_id, content, likes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.UserID,
		post.Content,
		pq.Array(post.Likes),
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetPostByID retrieves a post by its ID, including the like set.
func (r *Repository) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	query := `
		SELECT id, user_id, content, likes, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	return r.scanPost(r.pool.QueryRow(ctx, query, id))
}

// SavePost persists the mutable fields of a post (content and like set).
// The read-modify-write over the like set is not serialized; see
// PostService.ToggleLike.
func (r *Repository) SavePost(ctx context.Context, post *model.Post) error {
	query := `
		UPDATE posts
		SET content = $2, likes = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Content,
		pq.Array(post.Likes),
		post.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

// ListPostsByUser retrieves all posts owned by a user, newest first.
func (r *Repository) ListPostsByUser(ctx context.Context, userID string) ([]*model.Post, error) {
	query := `
		SELECT id, user_id, content, likes, created_at, updated_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := r.scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

func (r *Repository) scanPost(row pgx.Row) (*model.Post, error) {
	var post model.Post
	var likes []string

	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		pq.Array(&likes),
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.Likes = likes
	if post.Likes == nil {
		post.Likes = []string{}
	}

	return &post, nil
}
