package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

const defaultProfileTTL = time.Minute

// ProfileCache memoizes the authoritative profile fetch per session.
// Key format: profile:<session_id>. Entries expire on their own; mutations
// of profile state invalidate eagerly via Invalidate.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a ProfileCache. If ttl <= 0, a one-minute default
// is used.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

// Get returns the cached profile and whether one was present.
func (c *ProfileCache) Get(ctx context.Context, sessionID string) (*domain.Profile, bool, error) {
	data, err := c.client.Get(ctx, c.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("profile cache get: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, false, fmt.Errorf("profile cache unmarshal: %w", err)
	}
	return &profile, true, nil
}

// Set stores the profile for the cache TTL.
func (c *ProfileCache) Set(ctx context.Context, sessionID string, profile domain.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("profile cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, c.key(sessionID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("profile cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached profile.
func (c *ProfileCache) Invalidate(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, c.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("profile cache invalidate: %w", err)
	}
	return nil
}

func (c *ProfileCache) key(sessionID string) string {
	return "profile:" + sessionID
}
