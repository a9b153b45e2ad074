package today

import "github.com/jellydator/ttlcache/v3"

// ProgramCache keeps compiled rule programs keyed by expression.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// NewProgramCache returns an in-memory cache holding up to capacity programs.
// When full, the least recently used entry is evicted. A capacity below one
// means unbounded. Entries never expire.
func NewProgramCache(capacity int) ProgramCache {
	var opts []ttlcache.Option[string, any]
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, any](uint64(capacity)))
	}
	return &lruProgramCache{cache: ttlcache.New[string, any](opts...)}
}

// programKey scopes expression to the evaluator that compiled it. Programs of
// the expr and CEL engines bind that evaluator's functions, so evaluators
// sharing a cache must not see each other's entries.
func programKey(scope, expression string) string {
	return scope + "|" + expression
}

type lruProgramCache struct {
	cache *ttlcache.Cache[string, any]
}

func (c *lruProgramCache) Get(key string) (any, bool) {
	item := c.cache.Get(key)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

func (c *lruProgramCache) Set(key string, value any) {
	c.cache.Set(key, value, ttlcache.NoTTL)
}
