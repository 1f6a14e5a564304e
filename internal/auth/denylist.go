package auth

import (
	"context"
	"fmt"
	"time"

	"notesapi/internal/cache"
)

const revokedTokenKeyPrefix = "revoked:access_token:"

// Denylist records revoked access tokens until they would expire anyway.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist keeps revoked token ids in Redis.
type RedisDenylist struct {
	cache *cache.Client
}

var _ Denylist = (*RedisDenylist)(nil)

// NewRedisDenylist creates a denylist on top of the fail-safe cache.
func NewRedisDenylist(cache *cache.Client) *RedisDenylist {
	return &RedisDenylist{cache: cache}
}

// Revoke stores a marker for tokenID that expires with the token. Unlike
// reads, it fails when the marker cannot be stored.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := d.cache.SetStrict(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl); err != nil {
		return fmt.Errorf("store revoked token: %w", err)
	}
	return nil
}

// IsRevoked checks if an access token has been revoked.
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	data, err := d.cache.Get(ctx, revokedTokenKeyPrefix+tokenID)
	if err != nil {
		return false, nil // fail open: expiry still bounds the token
	}
	return data != nil, nil
}
