package cache

import (
	"context"
	"sync"
	"time"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
)

// Ensure InMemoryCounterCache implements CounterCache
var _ inventoryapp.CounterCache = (*InMemoryCounterCache)(nil)

// InMemoryCounterCache implements CounterCache in process memory.
// Suitable for single-instance deployments and tests.
type InMemoryCounterCache struct {
	mu        sync.RWMutex
	counters  *inventoryapp.DashboardCounters
	expiresAt time.Time
	ttl       time.Duration

	// now is swappable for tests
	now func() time.Time
}

// NewInMemoryCounterCache creates a new in-memory counter cache
func NewInMemoryCounterCache(ttl time.Duration) *InMemoryCounterCache {
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	return &InMemoryCounterCache{ttl: ttl, now: time.Now}
}

// Get returns the cached counters, or nil when absent or expired
func (c *InMemoryCounterCache) Get(ctx context.Context) (*inventoryapp.DashboardCounters, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.counters == nil || c.now().After(c.expiresAt) {
		return nil, nil
	}
	counters := *c.counters
	return &counters, nil
}

// Set stores the counters and refreshes the expiry
func (c *InMemoryCounterCache) Set(ctx context.Context, counters inventoryapp.DashboardCounters) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counters = &counters
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}
