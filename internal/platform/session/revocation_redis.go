// Package session keeps the server-side state of issued access tokens.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRedis records access tokens revoked by logout until they expire.
// Tokens are stored by SHA-256 digest, never in clear text.
type RevocationRedis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRevocationRedis creates a new RevocationRedis instance.
// A nil client turns every operation into a no-op.
func NewRevocationRedis(client *redis.Client, prefix string) *RevocationRedis {
	if prefix == "" {
		prefix = "revoked"
	}
	return &RevocationRedis{client: client, prefix: prefix, now: time.Now}
}

// tokenKey returns the Redis key for a token.
func (r *RevocationRedis) tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%s:%s", r.prefix, hex.EncodeToString(sum[:]))
}

// Revoke marks token as revoked until expiresAt. An already expired token is ignored.
func (r *RevocationRedis) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if r.client == nil {
		return nil
	}
	if token == "" {
		return errors.New("empty token")
	}
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.tokenKey(token), expiresAt.Unix(), ttl).Err()
}

// IsRevoked reports whether token was revoked and has not expired yet.
func (r *RevocationRedis) IsRevoked(ctx context.Context, token string) (bool, error) {
	if r.client == nil {
		return false, nil
	}
	n, err := r.client.Exists(ctx, r.tokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
