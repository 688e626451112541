package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist stores revoked access tokens in Redis until their natural expiry.
// A nil *Blacklist (no Redis configured) is a valid no-op value, so callers
// don't have to branch on deployment shape.
type Blacklist struct {
	client *redis.Client
	prefix string
}

func NewBlacklist(client *redis.Client) *Blacklist {
	if client == nil {
		return nil
	}
	return &Blacklist{client: client, prefix: "blacklist:access:"}
}

// Add stores the token with the given TTL; after the TTL the token would be
// expired anyway and the entry self-cleans.
func (b *Blacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if b == nil {
		return nil
	}
	return b.client.Set(ctx, b.prefix+token, "1", ttl).Err()
}

// IsRevoked reports whether the token has been blacklisted.
func (b *Blacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	if b == nil {
		return false, nil
	}
	n, err := b.client.Exists(ctx, b.prefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
