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

// cartTTL expires abandoned carts. Every save refreshes it.
const cartTTL = 6 * time.Hour

// CartStore persists the working cart per browser session as a JSON blob.
// Key format: cart:<session_id>.
type CartStore struct {
	client *redis.Client
}

// NewCartStore creates a CartStore wrapping the given Redis client.
func NewCartStore(client *redis.Client) *CartStore {
	return &CartStore{client: client}
}

// Get returns the session's cart; a session with no cart yields an empty one.
func (s *CartStore) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart get: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("cart unmarshal: %w", err)
	}
	return cart, nil
}

// Save overwrites the session's cart and refreshes its TTL.
func (s *CartStore) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart marshal: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("cart save: %w", err)
	}
	return nil
}

// Clear drops the session's cart.
func (s *CartStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}

func (s *CartStore) key(sessionID string) string {
	return "cart:" + sessionID
}
