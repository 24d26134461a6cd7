package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/micropost/micropost/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// CreateUser inserts a new user into the database.
// The unique index on email is the final arbiter under concurrent
// registrations; a violation surfaces as ErrEmailExists.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, username, name, age, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.Name,
		user.Age,
		user.PasswordHash,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, email, username, name, age, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetUserByEmail retrieves a user by their email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, username, name, age, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

// GetUserWithPosts retrieves a user together with the posts they own,
// newest first. This is the relational expansion behind the profile view.
func (r *Repository) GetUserWithPosts(ctx context.Context, id string) (*model.User, []*model.Post, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	posts, err := r.ListPostsByUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return user, posts, nil
}

func (r *Repository) scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.Name,
		&user.Age,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
