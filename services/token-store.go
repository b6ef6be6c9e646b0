package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "auth:revoked:" // Revoked token keys: auth:revoked:{token}

// TokenStore keeps revoked JWTs in Redis until they would have expired anyway.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke marks a token as logged out for its remaining lifetime.
func (s *TokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to store
	}
	if err := s.client.Set(ctx, revokedTokenPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %v", err)
	}
	return nil
}

// IsRevoked reports whether the token was revoked by a logout.
func (s *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	result, err := s.client.Exists(ctx, revokedTokenPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %v", err)
	}
	return result > 0, nil
}
