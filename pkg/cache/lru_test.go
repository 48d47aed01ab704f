package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salonsuite/planguard/pkg/cache"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLRUCache_Basic(t *testing.T) {
	t.Parallel()

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("update existing", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)
		old, existed := c.Put("a", 2)

		assert.True(t, existed)
		assert.Equal(t, 1, old)
		val, _ := c.Get("a")
		assert.Equal(t, 2, val)
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)

		val, ok := c.Remove("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		_, ok = c.Remove("a")
		assert.False(t, ok)
	})

	t.Run("panics on zero capacity", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { cache.NewLRUCache[string, int](0) })
	})
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[string, int](2)
	var evicted []string
	c.SetEvictCallback(func(key string, _ int) { evicted = append(evicted, key) })

	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a") // b becomes least recently used
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, 2, c.Len())
}

func TestLRUCache_TTL(t *testing.T) {
	t.Parallel()

	clock := &manualClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := cache.NewLRUCache[string, int](10, cache.WithTTL(time.Minute), cache.WithClock(clock.Now))

	c.Put("a", 1)
	clock.Advance(30 * time.Second)
	c.Put("b", 2)

	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	clock.Advance(30 * time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry expires exactly at ttl")

	_, ok = c.Get("b")
	assert.True(t, ok)

	clock.Advance(time.Minute)
	assert.Equal(t, 1, c.Purge())
	assert.Zero(t, c.Len())
}

func TestLRUCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[int, int](50)
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range 100 {
				c.Put(id*100+j, j)
				_, _ = c.Get(id*100 + j)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
