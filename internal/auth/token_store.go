package auth

import (
	"context"
	"time"

	"appointment-booking-api/internal/cache"
)

const revokedKeyPrefix = "revoked:access_token:"

// TokenStore keeps revoked token IDs in redis until the token would have
// expired anyway.
type TokenStore struct {
	cache *cache.Client
}

func NewTokenStore(c *cache.Client) *TokenStore {
	return &TokenStore{cache: c}
}

func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked fails open when redis is unavailable.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	return s.cache.Exists(ctx, revokedKeyPrefix+tokenID)
}
