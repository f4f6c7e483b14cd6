// Package zonecache keeps each branch's active delivery zones in memory for
// a bounded time, so courier assignment does not read zones on every
// dispatch. The cache is local to the process.
package zonecache

import (
	"context"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/zone"
	"pizzeria/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultTTL applies when the configured TTL is not positive.
const DefaultTTL = 30 * time.Second

var _ ports.ZoneCache = (*Cache)(nil)

// Loader reads a branch's active zones from storage.
type Loader interface {
	GetActiveByBranch(ctx context.Context, branchID kernel.UUID) ([]*zone.Zone, error)
}

// entry carries its own deadline so expiry follows the injected clock;
// ttlcache enforces the same TTL on wall time.
type entry struct {
	zones     []*zone.Zone
	expiresAt time.Time
}

type Cache struct {
	items *ttlcache.Cache[uuid.UUID, entry]

	loader  Loader
	ttl     time.Duration
	now     func() time.Time
	lookups *prometheus.CounterVec
	logger  *slog.Logger
}

type Option func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLookupCounter counts lookups by result label "hit" or "miss".
func WithLookupCounter(lookups *prometheus.CounterVec) Option {
	return func(c *Cache) { c.lookups = lookups }
}

func New(loader Loader, ttl time.Duration, logger *slog.Logger, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		items: ttlcache.New[uuid.UUID, entry](
			ttlcache.WithTTL[uuid.UUID, entry](ttl),
			ttlcache.WithDisableTouchOnHit[uuid.UUID, entry](),
		),
		loader: loader,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With("component", "zone_cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Zones returns the branch's zones, loading them on a miss or after expiry.
// Concurrent misses for the same branch may each load; the last one wins.
// Load errors are not cached.
func (c *Cache) Zones(ctx context.Context, branchID kernel.UUID) ([]*zone.Zone, error) {
	key := branchID.Bytes()

	if item := c.items.Get(key); item != nil && c.now().Before(item.Value().expiresAt) {
		c.count("hit")
		return item.Value().zones, nil
	}
	c.count("miss")

	zones, err := c.loader.GetActiveByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	c.items.Set(key, entry{zones: zones, expiresAt: c.now().Add(c.ttl)}, ttlcache.DefaultTTL)

	c.logger.DebugContext(ctx, "zones loaded", "branch_id", branchID.String(), "zones", len(zones))
	return zones, nil
}

func (c *Cache) Invalidate(branchID kernel.UUID) {
	c.items.Delete(branchID.Bytes())
}

func (c *Cache) InvalidateAll() {
	c.items.DeleteAll()
}

// PurgeExpired evicts entries past their deadline and reports how many went.
func (c *Cache) PurgeExpired() int {
	now := c.now()
	purged := 0
	for key, item := range c.items.Items() {
		if !now.Before(item.Value().expiresAt) {
			c.items.Delete(key)
			purged++
		}
	}
	before := c.items.Len()
	c.items.DeleteExpired()
	return purged + before - c.items.Len()
}

// Len reports the number of cached branches.
func (c *Cache) Len() int {
	return c.items.Len()
}

func (c *Cache) count(result string) {
	if c.lookups != nil {
		c.lookups.WithLabelValues(result).Inc()
	}
}
