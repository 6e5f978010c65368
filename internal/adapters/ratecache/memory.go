// Package ratecache holds the rate bucket caches used by the rate provider.
package ratecache

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type entry struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

// MemoryCache is a process-local rate cache. Entries are dropped lazily on
// read and in bulk by Sweep. Its size is bounded by the number of distinct
// pairs and days requested, which is small.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[domain.RateKey]entry
	now     func() time.Time
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[domain.RateKey]entry),
		now:     time.Now,
	}
}

// Get returns a live, positive rate for key.
func (c *MemoryCache) Get(_ context.Context, key domain.RateKey) (decimal.Decimal, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return decimal.Zero, false
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return decimal.Zero, false
	}
	return e.rate, true
}

// Set stores rate until expiresAt. Non-positive rates are ignored.
func (c *MemoryCache) Set(_ context.Context, key domain.RateKey, rate decimal.Decimal, expiresAt time.Time) {
	if !rate.IsPositive() || !expiresAt.After(c.now()) {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry{rate: rate, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Sweep removes every expired entry and reports how many were removed.
func (c *MemoryCache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ portsrepo.RateCache = (*MemoryCache)(nil)
