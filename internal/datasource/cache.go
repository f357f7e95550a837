package datasource

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

const oddsCacheKey = "odds"

// CachedMarketSource wraps a MarketSource with a TTL cache so repeated runs
// inside the TTL window reuse the previous quotes instead of spending API
// quota. Failures are never cached.
type CachedMarketSource struct {
	source MarketSource
	cache  *cache.Cache
	mu     sync.Mutex
	hits   uint64
	misses uint64
}

// NewCachedMarketSource creates a caching wrapper around source.
func NewCachedMarketSource(source MarketSource, ttl time.Duration) *CachedMarketSource {
	return &CachedMarketSource{
		source: source,
		cache:  cache.New(ttl, ttl*2),
	}
}

// Name returns the underlying data source name
func (c *CachedMarketSource) Name() string {
	return c.source.Name()
}

// FetchOdds returns cached events when fresh, otherwise delegates to the
// wrapped source and caches the result.
func (c *CachedMarketSource) FetchOdds(ctx context.Context) ([]OddsEvent, error) {
	c.mu.Lock()
	if cached, found := c.cache.Get(oddsCacheKey); found {
		if events, ok := cached.([]OddsEvent); ok {
			c.hits++
			c.mu.Unlock()
			return events, nil
		}
	}
	c.misses++
	c.mu.Unlock()

	events, err := c.source.FetchOdds(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache.SetDefault(oddsCacheKey, events)
	c.mu.Unlock()
	return events, nil
}

// Stats returns cache hit and miss counts.
func (c *CachedMarketSource) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
