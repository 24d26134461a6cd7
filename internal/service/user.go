package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/micropost/micropost/internal/auth"
	"github.com/micropost/micropost/internal/cache"
	"github.com/micropost/micropost/internal/metrics"
	"github.com/micropost/micropost/internal/model"
	"github.com/micropost/micropost/internal/repository"
)

// Service errors.
var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService handles registration, login and profile expansion.
type UserService struct {
	users      UserStore
	profiles   ProfileCache
	codec      *auth.Codec
	metrics    metrics.Recorder
	profileTTL time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, profiles ProfileCache, codec *auth.Codec, recorder metrics.Recorder, profileTTL time.Duration) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if profileTTL <= 0 {
		profileTTL = cache.DefaultProfileTTL
	}
	return &UserService{
		users:      users,
		profiles:   profiles,
		codec:      codec,
		metrics:    recorder,
		profileTTL: profileTTL,
	}
}

// Register creates a new account and issues a session token.
// Returns ErrEmailTaken when the identity key is already registered.
// The existence check completes before any write; the store's unique
// constraint is the final arbiter if a concurrent registration wins
// the race, and that violation surfaces as ErrEmailTaken too.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	if err := validateInput(input); err != nil {
		return nil, "", err
	}

	_, err := s.users.GetUserByEmail(ctx, input.Email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	// The plaintext credential is hashed here and discarded; it is
	// never stored or logged.
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        input.Email,
		Username:     input.Username,
		Name:         input.Name,
		Age:          input.Age,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.codec.Issue(user.Email, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncRegistration()
	return user, token, nil
}

// Login verifies credentials and issues a session token. Both an
// unknown email and a wrong password yield the same generic
// ErrInvalidCredentials so the response reveals nothing about which
// identities exist. A hashing-library fault is returned as-is and is
// distinct from a credential mismatch.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLogin(false)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !match {
		s.metrics.IncLogin(false)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.Email, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLogin(true)
	return user, token, nil
}

// Profile loads a user together with their posts, consulting the
// profile cache first. Cache failures degrade to store reads.
func (s *UserService) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	if s.profiles != nil {
		if profile, err := s.profiles.GetProfile(ctx, userID); err == nil {
			s.metrics.IncProfileCacheHit()
			return profile, nil
		}
		s.metrics.IncProfileCacheMiss()
	}

	user, posts, err := s.users.GetUserWithPosts(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	profile := &model.Profile{User: user, Posts: posts}

	if s.profiles != nil {
		// Best effort; a failed write just means a store read next time.
		_ = s.profiles.SetProfile(ctx, userID, profile, s.profileTTL)
	}

	return profile, nil
}
