package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore remembers revoked tokens until they would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

type RedisSessionStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisSessionStore(redisURL string) (*RedisSessionStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return NewRedisSessionStoreWithClient(redis.NewClient(opts), ""), nil
}

func NewRedisSessionStoreWithClient(client *redis.Client, keyPrefix string) *RedisSessionStore {
	if keyPrefix == "" {
		keyPrefix = "raceplanner:"
	}
	return &RedisSessionStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisSessionStore) revokedKey(tokenID string) string {
	return fmt.Sprintf("%srevoked:%s", s.keyPrefix, tokenID)
}

// Revoke stores tokenID for ttl. A non-positive ttl means the token has already expired and nothing is stored.
func (s *RedisSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, s.revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to revoke token %s: %w", tokenID, err)
	}
	return nil
}

func (s *RedisSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: failed to check token %s: %w", tokenID, err)
	}
	return n > 0, nil
}

func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
