package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return &Cache{Rdb: rdb, TTL: time.Minute}, mr
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	md := &MarketData{PriceUSD: 1.5, Volume24h: 1000}
	c.Set(ctx, "ethereum", "0xABC", md)

	// Address lookup is case-insensitive.
	got, ok := c.Get(ctx, "ethereum", "0xabc")
	require.True(t, ok)
	assert.Equal(t, 1.5, got.PriceUSD)
	assert.Equal(t, 1000.0, got.Volume24h)
}

func TestCache_MissOnOtherNetwork(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, "ethereum", "0xabc", &MarketData{PriceUSD: 1})
	_, ok := c.Get(ctx, "bsc", "0xabc")
	assert.False(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, "ethereum", "0xabc", &MarketData{PriceUSD: 1})
	mr.FastForward(2 * time.Minute)
	_, ok := c.Get(ctx, "ethereum", "0xabc")
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, "ethereum", "0xabc", &MarketData{PriceUSD: 1})
	c.Invalidate(ctx, []Target{{ID: "a", Network: "ethereum", Address: "0xabc"}})
	_, ok := c.Get(ctx, "ethereum", "0xabc")
	assert.False(t, ok)
}

func TestCache_NilIsAlwaysMiss(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	_, ok := c.Get(ctx, "ethereum", "0xabc")
	assert.False(t, ok)
	// No-ops, no panic.
	c.Set(ctx, "ethereum", "0xabc", &MarketData{})
	c.Invalidate(ctx, nil)
}
