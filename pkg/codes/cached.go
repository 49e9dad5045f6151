package codes

import (
	"strings"

	"github.com/geofeed/validator/cache"
)

// DefaultCacheSize is the number of codes kept by the default lookup.
const DefaultCacheSize = 1024

type countryHit struct {
	c  Country
	ok bool
}

type subdivisionHit struct {
	s  Subdivision
	ok bool
}

// Cached wraps a Lookup with LRU caches. Negative results are cached too,
// which matters for feeds repeating the same invalid code on every line.
type Cached struct {
	inner        Lookup
	countries    *cache.Cache[string, countryHit]
	subdivisions *cache.Cache[string, subdivisionHit]
}

// NewCached wraps inner with caches holding up to size entries each.
func NewCached(inner Lookup, size int) *Cached {
	return &Cached{
		inner:        inner,
		countries:    cache.New[string, countryHit](size),
		subdivisions: cache.New[string, subdivisionHit](size),
	}
}

// Country implements Lookup.
func (c *Cached) Country(code string) (Country, bool) {
	hit := c.countries.GetOrSet(strings.ToUpper(code), func() countryHit {
		v, ok := c.inner.Country(code)
		return countryHit{v, ok}
	})
	return hit.c, hit.ok
}

// Subdivision implements Lookup.
func (c *Cached) Subdivision(code string) (Subdivision, bool) {
	hit := c.subdivisions.GetOrSet(strings.ToUpper(code), func() subdivisionHit {
		v, ok := c.inner.Subdivision(code)
		return subdivisionHit{v, ok}
	})
	return hit.s, hit.ok
}

// Stats returns the country and subdivision cache statistics.
func (c *Cached) Stats() (countries, subdivisions cache.Stats) {
	return c.countries.Stats(), c.subdivisions.Stats()
}

// Clear drops all cached entries, e.g. after loading more codes into the
// inner lookup.
func (c *Cached) Clear() {
	c.countries.Clear()
	c.subdivisions.Clear()
}
