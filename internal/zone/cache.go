// Package zone resolves IANA time zone names for the coercion core, keeping
// recently used locations in memory.
package zone

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"
)

// Cache implements statistics.LocationLoader with an LRU cache in front of
// time.LoadLocation. It is safe for concurrent use.
type Cache struct {
	load    func(name string) (*time.Location, error)
	cache   *lru.Cache
	lookups *prometheus.CounterVec // labels: result={hit,miss,error}
}

// NewCache creates a cache holding up to maxEntries locations. lookups may be nil.
func NewCache(maxEntries int, lookups *prometheus.CounterVec) (*Cache, error) {
	return newCache(maxEntries, lookups, time.LoadLocation)
}

func newCache(maxEntries int, lookups *prometheus.CounterVec, load func(string) (*time.Location, error)) (*Cache, error) {
	cache, err := lru.New(maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create zone cache: %w", err)
	}
	return &Cache{
		load:    load,
		cache:   cache,
		lookups: lookups,
	}, nil
}

// Load returns the location for name, loading it on a miss.
func (c *Cache) Load(name string) (*time.Location, error) {
	if v, ok := c.cache.Get(name); ok {
		c.observe("hit")
		return v.(*time.Location), nil
	}
	loc, err := c.load(name)
	if err != nil {
		// Failures are not cached so a zone added by a tzdata update is picked up.
		c.observe("error")
		return nil, err
	}
	c.observe("miss")
	c.cache.Add(name, loc)
	return loc, nil
}

// Len returns the number of cached locations.
func (c *Cache) Len() int {
	return c.cache.Len()
}

func (c *Cache) observe(result string) {
	if c.lookups != nil {
		c.lookups.WithLabelValues(result).Inc()
	}
}
