// Package cache provides an optional Redis-backed cache for supplier risk
// profiles. Caching is an optimization only; every failure degrades to a
// cache miss.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/risk"
)

const keyPrefix = "risk:profile:"

// RiskProfileCache caches risk profiles in Redis with a TTL.
type RiskProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRiskProfileCache creates a cache over the given Redis client.
func NewRiskProfileCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RiskProfileCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RiskProfileCache{rdb: rdb, ttl: ttl, log: log}
}

// Get returns the cached profile for a supplier, if present.
func (c *RiskProfileCache) Get(ctx context.Context, supplierID string) (*risk.Profile, bool) {
	raw, err := c.rdb.Get(ctx, keyPrefix+supplierID).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("supplier_id", supplierID).Msg("risk cache: get failed")
		}
		return nil, false
	}

	var profile risk.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		c.log.Warn().Err(err).Str("supplier_id", supplierID).Msg("risk cache: corrupt entry dropped")
		c.rdb.Del(ctx, keyPrefix+supplierID)
		return nil, false
	}
	return &profile, true
}

// Set stores a profile. Failures are logged and ignored.
func (c *RiskProfileCache) Set(ctx context.Context, supplierID string, profile *risk.Profile) {
	raw, err := json.Marshal(profile)
	if err != nil {
		c.log.Warn().Err(err).Str("supplier_id", supplierID).Msg("risk cache: marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+supplierID, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("supplier_id", supplierID).Msg("risk cache: set failed")
	}
}
