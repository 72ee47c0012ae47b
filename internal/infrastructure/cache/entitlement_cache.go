package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/infrastructure/config"
)

// EntitlementCache stores computed allowed-feature snapshots per tenant.
// A miss (or any cache fault) means the caller recomputes from the plan
// store; the cache is never authoritative.
type EntitlementCache interface {
	Get(ctx context.Context, tenantRef string) (identity.FeatureKeySet, bool)
	Set(ctx context.Context, tenantRef string, features identity.FeatureKeySet)
	Invalidate(ctx context.Context, tenantRef string)
}

const entitlementKeyPrefix = "entitlement:features:"

// RedisEntitlementCache implements EntitlementCache using Redis, suitable
// for distributed deployments where multiple instances share state
type RedisEntitlementCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisEntitlementCache creates a cache backed by a new Redis connection
func NewRedisEntitlementCache(cfg config.RedisConfig) (*RedisEntitlementCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisEntitlementCache{client: client, ttl: cfg.EntitlementCacheTTL}, nil
}

// NewRedisEntitlementCacheWithClient creates a cache with an existing client.
// Useful for testing or when sharing a client across components.
func NewRedisEntitlementCacheWithClient(client *redis.Client, ttl time.Duration) *RedisEntitlementCache {
	return &RedisEntitlementCache{client: client, ttl: ttl}
}

// Get returns the cached feature set for a tenant. Cache faults are
// reported as misses so access checks degrade to recomputation, never
// to a hard failure.
func (c *RedisEntitlementCache) Get(ctx context.Context, tenantRef string) (identity.FeatureKeySet, bool) {
	raw, err := c.client.Get(ctx, entitlementKeyPrefix+tenantRef).Bytes()
	if err != nil {
		return nil, false
	}

	var keys []identity.FeatureKey
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, false
	}
	return identity.NewFeatureKeySet(keys...), true
}

// Set stores the feature set with the configured TTL. Write failures are
// swallowed for the same reason read failures are.
func (c *RedisEntitlementCache) Set(ctx context.Context, tenantRef string, features identity.FeatureKeySet) {
	raw, err := json.Marshal(features.Keys())
	if err != nil {
		return
	}
	c.client.Set(ctx, entitlementKeyPrefix+tenantRef, raw, c.ttl)
}

// Invalidate drops the cached snapshot for a tenant. Called whenever a
// tenant's plan assignment or a plan definition changes.
func (c *RedisEntitlementCache) Invalidate(ctx context.Context, tenantRef string) {
	c.client.Del(ctx, entitlementKeyPrefix+tenantRef)
}

// Close closes the underlying Redis client
func (c *RedisEntitlementCache) Close() error {
	return c.client.Close()
}
