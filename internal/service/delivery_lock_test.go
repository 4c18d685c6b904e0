package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisDeliveryLockAcquire(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	lock := NewRedisDeliveryLock(client)

	acquired, err := lock.Acquire(context.Background(), "assessment#7", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	acquired, err = lock.Acquire(context.Background(), "assessment#7", time.Minute)
	require.NoError(t, err)
	require.False(t, acquired, "second delivery of the same PR must be rejected")

	acquired, err = lock.Acquire(context.Background(), "assessment#8", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired, "a different PR is an independent delivery")

	server.FastForward(2 * time.Minute)

	acquired, err = lock.Acquire(context.Background(), "assessment#7", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired, "lock must expire with its TTL")
}

func TestNoopDeliveryLockAlwaysGrants(t *testing.T) {
	lock := noopDeliveryLock{}

	for i := 0; i < 3; i++ {
		acquired, err := lock.Acquire(context.Background(), "assessment#7", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)
	}
}
