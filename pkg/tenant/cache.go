package tenant

import (
	"context"
	"time"

	"github.com/salonsuite/planguard/pkg/cache"
)

const (
	// DefaultCacheSize is the default maximum number of cached records.
	DefaultCacheSize = 1000

	// DefaultCacheTTL bounds how long a plan change takes to reach the limiter.
	DefaultCacheTTL = 5 * time.Minute
)

// Cache stores tenant records between requests.
type Cache interface {
	Get(ctx context.Context, id string) (Record, bool)
	Set(ctx context.Context, id string, rec Record)
	Delete(ctx context.Context, id string)
}

type lruCache struct {
	entries *cache.LRUCache[string, Record]
}

// NewInMemoryCache returns an LRU cache whose entries expire after ttl.
// Non-positive arguments fall back to DefaultCacheSize and DefaultCacheTTL.
func NewInMemoryCache(size int, ttl time.Duration, opts ...cache.Option) Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	opts = append([]cache.Option{cache.WithTTL(ttl)}, opts...)
	return &lruCache{entries: cache.NewLRUCache[string, Record](size, opts...)}
}

func (c *lruCache) Get(_ context.Context, id string) (Record, bool) {
	return c.entries.Get(id)
}

func (c *lruCache) Set(_ context.Context, id string, rec Record) {
	c.entries.Put(id, rec)
}

func (c *lruCache) Delete(_ context.Context, id string) {
	c.entries.Remove(id)
}

type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache.
func NewNoOpCache() Cache {
	return noOpCache{}
}

func (noOpCache) Get(context.Context, string) (Record, bool) { return Record{}, false }
func (noOpCache) Set(context.Context, string, Record)        {}
func (noOpCache) Delete(context.Context, string)             {}
