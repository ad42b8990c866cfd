package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// sessionTTL bounds how long an idle browser session keeps its bearer
	// token. Every Set refreshes it.
	sessionTTL = 24 * time.Hour
	// rememberTTL keeps the prefill email around well past the token.
	rememberTTL = 30 * 24 * time.Hour
)

// TokenStore keeps the upstream bearer token and the remembered login email
// per browser session. Key format: session:<id>:token / session:<id>:email.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Get returns the stored token, or "" when the session has none.
func (s *TokenStore) Get(ctx context.Context, sessionID string) (string, error) {
	token, err := s.client.Get(ctx, s.tokenKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token get: %w", err)
	}
	return token, nil
}

// Set overwrites the stored token and refreshes the session TTL.
func (s *TokenStore) Set(ctx context.Context, sessionID, token string) error {
	if err := s.client.Set(ctx, s.tokenKey(sessionID), token, sessionTTL).Err(); err != nil {
		return fmt.Errorf("token set: %w", err)
	}
	return nil
}

// Clear removes the stored token. The remembered email survives a logout.
func (s *TokenStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.tokenKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("token clear: %w", err)
	}
	return nil
}

// RememberEmail stores the login email for form prefill.
func (s *TokenStore) RememberEmail(ctx context.Context, sessionID, email string) error {
	if err := s.client.Set(ctx, s.emailKey(sessionID), email, rememberTTL).Err(); err != nil {
		return fmt.Errorf("remember email: %w", err)
	}
	return nil
}

// RememberedEmail returns the remembered email, or "" when none is stored.
func (s *TokenStore) RememberedEmail(ctx context.Context, sessionID string) (string, error) {
	email, err := s.client.Get(ctx, s.emailKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("remembered email: %w", err)
	}
	return email, nil
}

func (s *TokenStore) tokenKey(sessionID string) string {
	return "session:" + sessionID + ":token"
}

func (s *TokenStore) emailKey(sessionID string) string {
	return "session:" + sessionID + ":email"
}
