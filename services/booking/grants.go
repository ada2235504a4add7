package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrGrantNotFound is returned when a capability token is unknown, expired,
// or already consumed.
var ErrGrantNotFound = errors.New("corporate grant not found")

// GrantStore holds single-use corporate validation grants. A grant proves the
// access code was validated for this booking attempt; taking it consumes it.
type GrantStore interface {
	// Put stores the access code under the grant token with a TTL.
	Put(ctx context.Context, token, code string, ttl time.Duration) error
	// Take removes and returns the access code for the token, failing with
	// ErrGrantNotFound if absent. Take is atomic: concurrent takers of the
	// same token cannot both succeed.
	Take(ctx context.Context, token string) (string, error)
}

// RedisGrantStore implements GrantStore on a dedicated Redis database.
type RedisGrantStore struct {
	Client *redis.Client
}

func grantKey(token string) string {
	return "corpgrant:" + token
}

// Put stores the grant with its TTL.
func (s *RedisGrantStore) Put(ctx context.Context, token, code string, ttl time.Duration) error {
	if err := s.Client.Set(ctx, grantKey(token), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store corporate grant: %w", err)
	}
	return nil
}

// Take atomically fetches and deletes the grant.
func (s *RedisGrantStore) Take(ctx context.Context, token string) (string, error) {
	code, err := s.Client.GetDel(ctx, grantKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrGrantNotFound
		}
		return "", fmt.Errorf("failed to take corporate grant: %w", err)
	}
	return code, nil
}
