package critcss

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is an explicit, bounded store of extraction results with LRU
// eviction and a TTL. It is composed into an Engine with WithCache;
// multiple extraction workers can share one instance or hold their
// own — there is no module-level state.
type Cache struct {
	lru *expirable.LRU[string, ExtractResult]
}

// NewCache creates a cache holding up to capacity results, each valid
// for ttl. A ttl of zero disables expiry.
func NewCache(capacity int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, ExtractResult](capacity, nil, ttl),
	}
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops all cached results.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// key fingerprints one extraction: options, normalized signals and the
// full CSS text.
func (c *Cache) key(opts Options, signals Signals, cssText string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%v|%s|", opts, signals.Fingerprint())
	h.Write([]byte(cssText))
	return hex.EncodeToString(h.Sum(nil))
}

// get and put clone the rule storage both ways, so neither the caller
// that populated the cache nor later hits can mutate each other's
// results through a shared slice.
func (c *Cache) get(key string) (ExtractResult, bool) {
	res, ok := c.lru.Get(key)
	if ok {
		res.Rules = res.Rules.Clone()
	}
	return res, ok
}

func (c *Cache) put(key string, res ExtractResult) {
	res.Rules = res.Rules.Clone()
	c.lru.Add(key, res)
}
