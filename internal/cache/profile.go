package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/micropost/micropost/internal/model"
)

const profileKeyPrefix = "profile:"

// DefaultProfileTTL is the TTL for cached profile data. Profiles are
// invalidated on every mutation, so the TTL is only a backstop.
const DefaultProfileTTL = 30 * time.Second

// ErrCacheMiss indicates the requested entry is not cached.
var ErrCacheMiss = errors.New("cache miss")

// GetProfile retrieves a cached profile (user + owned posts) by user ID.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	key := profileKeyPrefix + userID

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		// Treat undecodable entries as a miss; they will be rewritten.
		return nil, ErrCacheMiss
	}

	return &profile, nil
}

// SetProfile stores a profile in cache with the given TTL.
func (c *Cache) SetProfile(ctx context.Context, userID string, profile *model.Profile, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := c.client.Set(ctx, profileKeyPrefix+userID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}

	return nil
}

// InvalidateProfile removes a cached profile after a mutation.
func (c *Cache) InvalidateProfile(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, profileKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate profile: %w", err)
	}
	return nil
}
