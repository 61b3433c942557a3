package catalog

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rotblauer/trajmix/types/trajectory"
)

// CachedLoader keeps recently loaded files in memory.
// Loaded files are shared between combinations and must be treated as read-only.
type CachedLoader struct {
	next  Loader
	cache *lru.Cache[string, *trajectory.File]

	hits, misses int
}

// NewCachedLoader wraps next with an LRU of size files.
// A size of zero or less returns next unwrapped.
func NewCachedLoader(next Loader, size int) (Loader, error) {
	if size <= 0 {
		return next, nil
	}
	c, err := lru.New[string, *trajectory.File](size)
	if err != nil {
		return nil, err
	}
	return &CachedLoader{next: next, cache: c}, nil
}

func (c *CachedLoader) Load(name string) (*trajectory.File, error) {
	if f, ok := c.cache.Get(name); ok {
		c.hits++
		return f, nil
	}
	c.misses++
	f, err := c.next.Load(name)
	if err != nil {
		return nil, err
	}
	c.cache.Add(name, f)
	return f, nil
}

// Stats returns cache hits and misses so far.
func (c *CachedLoader) Stats() (hits, misses int) {
	return c.hits, c.misses
}
