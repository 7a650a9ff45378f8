//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *RedisCache {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate redis container: %v", err)
		}
	})

	addr, err := container.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)

	cache := NewRedisCache(addr)
	t.Cleanup(func() { _ = cache.Close() })
	require.NoError(t, cache.Ping(ctx))
	return cache
}

func TestRedisCache(t *testing.T) {
	cache := setupRedis(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "score:1")
	require.NoError(t, err, "an absent key is a plain miss")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "score:1", `{"10000000:10000000":{"score":63}}`, time.Minute))
	value, ok, err := cache.Get(ctx, "score:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"10000000:10000000":{"score":63}}`, value)

	require.NoError(t, cache.Delete(ctx, "score:1"))
	_, ok, err = cache.Get(ctx, "score:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "score:2", "x", 50*time.Millisecond))
	assert.Eventually(t, func() bool {
		_, ok, err := cache.Get(ctx, "score:2")
		return err == nil && !ok
	}, 2*time.Second, 20*time.Millisecond)
}
