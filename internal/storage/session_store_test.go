package storage

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableStore points at a port nothing listens on, so every command fails fast.
func unreachableStore(t *testing.T) *RedisSessionStore {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return NewRedisSessionStoreWithClient(client, "test:")
}

func TestNewRedisSessionStore(t *testing.T) {
	store, err := NewRedisSessionStore("redis://localhost:6379/2")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "raceplanner:revoked:abc", store.revokedKey("abc"))

	_, err = NewRedisSessionStore("://not-a-url")
	assert.Error(t, err)
}

func TestRedisSessionStore_Revoke(t *testing.T) {
	store := unreachableStore(t)
	ctx := context.Background()

	t.Run("expired token is a no-op", func(t *testing.T) {
		assert.NoError(t, store.Revoke(ctx, "jti", 0))
		assert.NoError(t, store.Revoke(ctx, "jti", -time.Minute))
	})

	t.Run("connection failure is reported", func(t *testing.T) {
		assert.Error(t, store.Revoke(ctx, "jti", time.Minute))
	})
}

func TestRedisSessionStore_IsRevoked(t *testing.T) {
	store := unreachableStore(t)

	revoked, err := store.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
	assert.False(t, revoked)
	assert.Error(t, store.Ping(context.Background()))
}
