//go:build integration

package cache_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careops/infras/otel/mocks"
	"careops/shared/cache"
	"careops/shared/testhelpers"
)

type cachedBooking struct {
	ID    string `json:"id"`
	Price int64  `json:"price"`
}

func TestRedisCache_SaveGetDelete(t *testing.T) {
	redisCache := cache.NewRedisCache(testhelpers.GetTestRedis(t), mocks.NewOtel())
	ctx := t.Context()

	require.NoError(t, redisCache.Save(ctx, "booking:get:b1", cachedBooking{ID: "b1", Price: 15000}, 60))

	var got cachedBooking
	require.NoError(t, redisCache.Get(ctx, "booking:get:b1", &got))
	assert.Equal(t, cachedBooking{ID: "b1", Price: 15000}, got)

	require.NoError(t, redisCache.Delete(ctx, "booking:get:b1"))

	err := redisCache.Get(ctx, "booking:get:b1", &got)
	assert.ErrorIs(t, err, cache.Nil)
}

func TestRedisCache_Clear(t *testing.T) {
	redisCache := cache.NewRedisCache(testhelpers.GetTestRedis(t), mocks.NewOtel())
	ctx := t.Context()

	// more keys than one unlink batch
	for i := range 250 {
		require.NoError(t, redisCache.Save(ctx, fmt.Sprintf("booking:get:b%d", i), "cached", 60))
	}

	require.NoError(t, redisCache.Save(ctx, "contact:get:c1", "kept", 60))

	require.NoError(t, redisCache.Clear(ctx, "booking:get:"))

	var value string
	assert.ErrorIs(t, redisCache.Get(ctx, "booking:get:b0", &value), cache.Nil)
	assert.ErrorIs(t, redisCache.Get(ctx, "booking:get:b249", &value), cache.Nil)

	require.NoError(t, redisCache.Get(ctx, "contact:get:c1", &value))
	assert.Equal(t, "kept", value)
}
