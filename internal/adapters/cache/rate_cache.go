package cache

import (
	"fmt"
	"time"

	"cryptofolio/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoRateCache keeps recently read rates keyed by symbol. The refresh
// job evicts what it rewrites; ttl bounds entries cached from a read that
// raced with that eviction.
type RistrettoRateCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewRateCache holds up to maxItems rates, each for at most ttl (0 keeps them
// until evicted).
func NewRateCache(maxItems int64, ttl time.Duration) (*RistrettoRateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &RistrettoRateCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoRateCache) Get(symbol string) (domain.Rate, bool) {
	if v, ok := c.cache.Get(symbol); ok {
		r, ok := v.(domain.Rate)
		return r, ok
	}
	return domain.Rate{}, false
}

func (c *RistrettoRateCache) Set(rate domain.Rate) {
	if c.ttl > 0 {
		c.cache.SetWithTTL(rate.Symbol, rate, 1, c.ttl)
		return
	}
	c.cache.Set(rate.Symbol, rate, 1)
}

func (c *RistrettoRateCache) CleanBatch(symbols []string) {
	for _, symbol := range symbols {
		c.cache.Del(symbol)
	}
}

func (c *RistrettoRateCache) Close() { c.cache.Close() }
