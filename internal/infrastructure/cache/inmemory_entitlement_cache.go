package cache

import (
	"context"
	"sync"
	"time"

	"github.com/retailcore/backend/internal/domain/identity"
)

type inMemoryEntry struct {
	features  identity.FeatureKeySet
	expiresAt time.Time
}

// InMemoryEntitlementCache implements EntitlementCache with a local map.
// Suitable for single-instance deployments and tests.
type InMemoryEntitlementCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	ttl     time.Duration
}

// NewInMemoryEntitlementCache creates a new in-memory cache with the given TTL
func NewInMemoryEntitlementCache(ttl time.Duration) *InMemoryEntitlementCache {
	return &InMemoryEntitlementCache{
		entries: make(map[string]inMemoryEntry),
		ttl:     ttl,
	}
}

// Get returns the cached feature set for a tenant if present and fresh
func (c *InMemoryEntitlementCache) Get(_ context.Context, tenantRef string) (identity.FeatureKeySet, bool) {
	c.mu.RLock()
	entry, ok := c.entries[tenantRef]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.features, true
}

// Set stores the feature set for a tenant
func (c *InMemoryEntitlementCache) Set(_ context.Context, tenantRef string, features identity.FeatureKeySet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tenantRef] = inMemoryEntry{
		features:  features,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the cached snapshot for a tenant
func (c *InMemoryEntitlementCache) Invalidate(_ context.Context, tenantRef string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tenantRef)
}
