package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/Zackmartin238/HyFlipper/internal/adapters/metrics"
	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/catalog"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
)

const DefaultMaxEntries = 512

type entry struct {
	value    interface{}
	storedAt time.Time
}

// CachedProvider memoizes successful provider results per (endpoint, params).
//
// Failures are never stored. Concurrent misses on the same key share a
// single upstream call. A zero ttl keeps entries until evicted or purged.
type CachedProvider struct {
	provider market.MarketDataProvider
	entries  *lru.Cache
	group    singleflight.Group
	ttl      time.Duration
	clock    shared.Clock
}

var _ market.MarketDataProvider = (*CachedProvider)(nil)

// NewCachedProvider wraps provider with a bounded LRU of maxEntries results.
// If clock is nil, uses RealClock.
func NewCachedProvider(provider market.MarketDataProvider, maxEntries int, ttl time.Duration, clock shared.Clock) (*CachedProvider, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}

	entries, err := lru.NewWithEvict(maxEntries, func(key, value interface{}) {
		metrics.RecordCacheEviction()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	return &CachedProvider{
		provider: provider,
		entries:  entries,
		ttl:      ttl,
		clock:    clock,
	}, nil
}

// AuctionsPageKey is the cache key of one auction page. The search keyword is
// never sent upstream, so it is not part of the key.
func AuctionsPageKey(page int) string {
	return market.EndpointAuctions + "?page=" + strconv.Itoa(page)
}

func (c *CachedProvider) FetchAuctionsPage(ctx context.Context, page int) ([]*auction.Listing, error) {
	value, err := c.load(ctx, market.EndpointAuctions, AuctionsPageKey(page), func(fetchCtx context.Context) (interface{}, error) {
		return c.provider.FetchAuctionsPage(fetchCtx, page)
	})
	if err != nil {
		return nil, err
	}
	return value.([]*auction.Listing), nil
}

func (c *CachedProvider) FetchItemCatalog(ctx context.Context) ([]catalog.Entry, error) {
	value, err := c.load(ctx, market.EndpointItems, market.EndpointItems, func(fetchCtx context.Context) (interface{}, error) {
		return c.provider.FetchItemCatalog(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]catalog.Entry), nil
}

func (c *CachedProvider) FetchProfitFeed(ctx context.Context) ([]market.ProfitRecord, error) {
	value, err := c.load(ctx, market.EndpointKatProfit, market.EndpointKatProfit, func(fetchCtx context.Context) (interface{}, error) {
		return c.provider.FetchProfitFeed(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]market.ProfitRecord), nil
}

func (c *CachedProvider) FetchSupplyFeed(ctx context.Context) ([]market.SupplyRecord, error) {
	value, err := c.load(ctx, market.EndpointLowSupply, market.EndpointLowSupply, func(fetchCtx context.Context) (interface{}, error) {
		return c.provider.FetchSupplyFeed(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]market.SupplyRecord), nil
}

// Purge drops every cached result. The next call for any key goes upstream.
func (c *CachedProvider) Purge() {
	c.entries.Purge()
	metrics.RecordCacheSize(0)
}

// Len returns the number of cached results
func (c *CachedProvider) Len() int {
	return c.entries.Len()
}

// load serves key from the cache or joins the single upstream flight for it.
// The flight runs detached from any one caller's cancellation, so a caller that
// gives up never fails the others waiting on the same key.
func (c *CachedProvider) load(ctx context.Context, endpoint, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	logger := logging.LoggerFromContext(ctx)

	if value, ok := c.lookup(key); ok {
		metrics.RecordCacheHit(endpoint)
		logger.Log(logging.LevelDebug, "Result cache hit", map[string]interface{}{"key": key})
		return value, nil
	}

	metrics.RecordCacheMiss(endpoint)

	flightCtx := context.WithoutCancel(ctx)
	results := c.group.DoChan(key, func() (interface{}, error) {
		// Another flight may have filled the entry between lookup and DoChan
		if value, ok := c.lookup(key); ok {
			return value, nil
		}

		value, err := fetch(flightCtx)
		if err != nil {
			return nil, err
		}

		c.entries.Add(key, &entry{value: value, storedAt: c.clock.Now()})
		metrics.RecordCacheSize(c.entries.Len())
		return value, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-results:
	}

	if res.Err != nil {
		logger.Log(logging.LevelDebug, "Upstream fetch failed, nothing cached", map[string]interface{}{
			"key":   key,
			"error": res.Err.Error(),
		})
		return nil, res.Err
	}

	if res.Shared {
		logger.Log(logging.LevelDebug, "Joined in-flight fetch", map[string]interface{}{"key": key})
	}

	return res.Val, nil
}

func (c *CachedProvider) lookup(key string) (interface{}, bool) {
	raw, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}

	e := raw.(*entry)
	if c.ttl > 0 && c.clock.Now().Sub(e.storedAt) >= c.ttl {
		c.entries.Remove(key)
		return nil, false
	}

	return e.value, true
}
