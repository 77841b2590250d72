package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zackmartin238/HyFlipper/internal/adapters/cache"
	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/catalog"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
	"github.com/Zackmartin238/HyFlipper/test/helpers"
)

func TestCachedProvider_ServesRepeatCallsFromCache(t *testing.T) {
	// Arrange
	upstream := helpers.NewMockMarketProvider()
	upstream.SetCatalog([]catalog.Entry{{Tag: "HYPERION", Name: "Hyperion"}}, nil)
	cached, err := cache.NewCachedProvider(upstream, 0, 0, nil)
	require.NoError(t, err)

	// Act
	first, err := cached.FetchItemCatalog(context.Background())
	require.NoError(t, err)
	second, err := cached.FetchItemCatalog(context.Background())
	require.NoError(t, err)

	// Assert
	assert.Equal(t, first, second)
	assert.Equal(t, 1, upstream.Calls(market.EndpointItems))
	assert.Equal(t, 1, cached.Len())
}

func TestCachedProvider_KeysAuctionPagesByPageNumber(t *testing.T) {
	// Arrange
	upstream := helpers.NewMockMarketProvider()
	upstream.SetPage(1, []*auction.Listing{helpers.NewListing(t, helpers.ListingFixture{ItemName: "A", BuyNow: true})})
	upstream.SetPage(2, []*auction.Listing{helpers.NewListing(t, helpers.ListingFixture{ItemName: "B", BuyNow: true})})
	cached, err := cache.NewCachedProvider(upstream, 0, 0, nil)
	require.NoError(t, err)

	// Act
	for i := 0; i < 2; i++ {
		_, err = cached.FetchAuctionsPage(context.Background(), 1)
		require.NoError(t, err)
		_, err = cached.FetchAuctionsPage(context.Background(), 2)
		require.NoError(t, err)
	}

	// Assert
	assert.Equal(t, []int{1, 2}, upstream.PageCalls())
	assert.Equal(t, "auctions?page=2", cache.AuctionsPageKey(2))
}

func TestCachedProvider_FailuresAreNotCached(t *testing.T) {
	// Arrange
	upstream := helpers.NewMockMarketProvider()
	upstream.SetSupplyFeed(nil, market.NewTransportError(market.EndpointLowSupply, 503, errors.New("down")))
	cached, err := cache.NewCachedProvider(upstream, 0, 0, nil)
	require.NoError(t, err)

	// Act
	_, err = cached.FetchSupplyFeed(context.Background())
	require.Error(t, err)

	upstream.SetSupplyFeed([]market.SupplyRecord{{Tag: "X", Lowest: 1, SecondLowest: 2, Median: 3}}, nil)
	records, err := cached.FetchSupplyFeed(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, upstream.Calls(market.EndpointLowSupply))
}

func TestCachedProvider_CoalescesConcurrentMisses(t *testing.T) {
	// Arrange
	upstream := helpers.NewMockMarketProvider()
	upstream.SetProfitFeed([]market.ProfitRecord{{OriginAuctionName: "Tiger"}}, nil)
	upstream.Delay = 50 * time.Millisecond
	cached, err := cache.NewCachedProvider(upstream, 0, 0, nil)
	require.NoError(t, err)

	// Act
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cached.FetchProfitFeed(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	// Assert
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, upstream.Calls(market.EndpointKatProfit))
}

func TestCachedProvider_TTLExpiresEntries(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	upstream := helpers.NewMockMarketProvider()
	cached, err := cache.NewCachedProvider(upstream, 0, time.Minute, clock)
	require.NoError(t, err)

	// Act
	_, _ = cached.FetchItemCatalog(context.Background())
	clock.Advance(30 * time.Second)
	_, _ = cached.FetchItemCatalog(context.Background())
	clock.Advance(time.Minute)
	_, _ = cached.FetchItemCatalog(context.Background())

	// Assert
	assert.Equal(t, 2, upstream.Calls(market.EndpointItems))
}

func TestCachedProvider_PurgeForcesRefetch(t *testing.T) {
	upstream := helpers.NewMockMarketProvider()
	cached, err := cache.NewCachedProvider(upstream, 0, 0, nil)
	require.NoError(t, err)

	_, _ = cached.FetchSupplyFeed(context.Background())
	cached.Purge()
	_, _ = cached.FetchSupplyFeed(context.Background())

	assert.Equal(t, 2, upstream.Calls(market.EndpointLowSupply))
}

func TestCachedProvider_BoundedByMaxEntries(t *testing.T) {
	// Arrange
	upstream := helpers.NewMockMarketProvider()
	cached, err := cache.NewCachedProvider(upstream, 2, 0, nil)
	require.NoError(t, err)

	// Act: pages 1, 2, 3 evict page 1
	for page := 1; page <= 3; page++ {
		_, err := cached.FetchAuctionsPage(context.Background(), page)
		require.NoError(t, err)
	}
	_, err = cached.FetchAuctionsPage(context.Background(), 1)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 2, cached.Len())
	assert.Equal(t, []int{1, 2, 3, 1}, upstream.PageCalls())
}

func TestNewCachedProvider_RequiresProvider(t *testing.T) {
	_, err := cache.NewCachedProvider(nil, 10, 0, nil)

	assert.Error(t, err)
}

func TestCachedProvider_CancelledCallerDoesNotFailJoinedCaller(t *testing.T) {
	// Arrange
	upstream := helpers.NewMockMarketProvider()
	upstream.SetPage(1, []*auction.Listing{helpers.NewListing(t, helpers.ListingFixture{ItemName: "Hyperion", BuyNow: true})})
	upstream.Delay = 200 * time.Millisecond
	started := make(chan struct{})
	var once sync.Once
	upstream.OnFetch = func(string) { once.Do(func() { close(started) }) }
	cached, err := cache.NewCachedProvider(upstream, 0, 0, nil)
	require.NoError(t, err)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cached.FetchAuctionsPage(firstCtx, 1)
		firstErr <- err
	}()
	<-started

	type result struct {
		listings []*auction.Listing
		err      error
	}
	second := make(chan result, 1)
	go func() {
		listings, err := cached.FetchAuctionsPage(context.Background(), 1)
		second <- result{listings, err}
	}()
	time.Sleep(20 * time.Millisecond)

	// Act
	cancelFirst()

	// Assert
	assert.ErrorIs(t, <-firstErr, context.Canceled)
	got := <-second
	require.NoError(t, got.err)
	require.Len(t, got.listings, 1)
	assert.Equal(t, "Hyperion", got.listings[0].ItemName())
	assert.Equal(t, []int{1}, upstream.PageCalls())
	assert.Equal(t, 1, cached.Len())
}

func TestCachedProvider_CancelledCallerReturnsWithoutWaiting(t *testing.T) {
	// Arrange
	upstream := helpers.NewMockMarketProvider()
	upstream.Delay = 500 * time.Millisecond
	cached, err := cache.NewCachedProvider(upstream, 0, 0, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Act
	start := time.Now()
	_, err = cached.FetchItemCatalog(ctx)

	// Assert
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}
