package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "marketdata:"

// Cache is a Redis cache-aside layer in front of the screener API, so
// repeated index loads within the TTL do not re-hit the third party.
// A nil Cache (Redis not configured) is always a miss.
type Cache struct {
	Rdb *redis.Client
	TTL time.Duration
}

func cacheKey(network, address string) string {
	return fmt.Sprintf("%s%s:%s", cachePrefix, network, strings.ToLower(address))
}

// Get returns the cached snapshot for the token, if present.
func (c *Cache) Get(ctx context.Context, network, address string) (*MarketData, bool) {
	if c == nil || c.Rdb == nil {
		return nil, false
	}
	b, err := c.Rdb.Get(ctx, cacheKey(network, address)).Bytes()
	if err != nil {
		return nil, false
	}
	var md MarketData
	if err := json.Unmarshal(b, &md); err != nil {
		return nil, false
	}
	return &md, true
}

// Set stores the snapshot with the configured TTL. Failures are
// ignored; the cache is best-effort.
func (c *Cache) Set(ctx context.Context, network, address string, md *MarketData) {
	if c == nil || c.Rdb == nil || md == nil {
		return
	}
	b, err := json.Marshal(md)
	if err != nil {
		return
	}
	c.Rdb.Set(ctx, cacheKey(network, address), b, c.TTL)
}

// Invalidate drops the cached snapshots for the given tokens; used by
// the explicit whole-collection refresh so the re-fetch is real.
func (c *Cache) Invalidate(ctx context.Context, targets []Target) {
	if c == nil || c.Rdb == nil {
		return
	}
	for _, t := range targets {
		c.Rdb.Del(ctx, cacheKey(t.Network, t.Address))
	}
}
