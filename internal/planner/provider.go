package planner

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/route66/internal/domain"
)

// DistanceProvider is an external source of authoritative road distances,
// such as a mapping service.
type DistanceProvider interface {
	Leg(ctx context.Context, from, to domain.Waypoint) (domain.Leg, error)
}

// DistanceCache stores legs by origin–destination key. Entries are never
// invalidated during a planning run.
type DistanceCache interface {
	Get(ctx context.Context, key string) (domain.Leg, bool)
	Set(ctx context.Context, key string, leg domain.Leg)
}

// CacheKey rounds coordinates to 5 decimal places (about a metre).
func CacheKey(from, to domain.Waypoint) string {
	return fmt.Sprintf("%.5f,%.5f->%.5f,%.5f", from.Lat, from.Lng, to.Lat, to.Lng)
}

// MemoryCache is an in-process DistanceCache safe for concurrent use.
type MemoryCache struct {
	mu   sync.RWMutex
	legs map[string]domain.Leg
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{legs: make(map[string]domain.Leg)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (domain.Leg, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	leg, ok := c.legs[key]
	return leg, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, leg domain.Leg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.legs[key] = leg
}

// Len returns the number of cached legs.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.legs)
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (domain.Leg, bool) { return domain.Leg{}, false }
func (NoopCache) Set(context.Context, string, domain.Leg)        {}

// CachedProvider consults cache before calling the wrapped provider.
type CachedProvider struct {
	inner DistanceProvider
	cache DistanceCache
}

// NewCachedProvider wraps inner with cache. A nil cache means NoopCache.
func NewCachedProvider(inner DistanceProvider, cache DistanceCache) *CachedProvider {
	if cache == nil {
		cache = NoopCache{}
	}
	return &CachedProvider{inner: inner, cache: cache}
}

// Leg returns the cached leg when present, otherwise asks the provider and
// caches a successful answer.
func (p *CachedProvider) Leg(ctx context.Context, from, to domain.Waypoint) (domain.Leg, error) {
	key := CacheKey(from, to)
	if leg, ok := p.cache.Get(ctx, key); ok {
		return leg, nil
	}
	leg, err := p.inner.Leg(ctx, from, to)
	if err != nil {
		return domain.Leg{}, err
	}
	p.cache.Set(ctx, key, leg)
	return leg, nil
}
