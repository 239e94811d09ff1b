package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/classroom/scheduler/internal/core/ports"
)

// keyValue is the part of the go-redis client the revocation list uses.
type keyValue interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RevocationList remembers logged-out session token ids.
// Key format: revoked:<jti>
type RevocationList struct {
	client keyValue
}

var _ ports.TokenRevoker = (*RevocationList)(nil)

// NewRevocationList creates a RevocationList wrapping the given Redis client.
func NewRevocationList(client keyValue) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke records tokenID until ttl elapses, which should be no earlier than
// the token's own expiry.
func (l *RevocationList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := l.client.Set(ctx, l.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (l *RevocationList) key(tokenID string) string {
	return "revoked:" + tokenID
}
