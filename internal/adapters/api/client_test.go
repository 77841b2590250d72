package api_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zackmartin238/HyFlipper/internal/adapters/api"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
)

const auctionsPage = `{
  "success": true,
  "page": 1,
  "totalPages": 1,
  "auctions": [
    {"uuid": "a1", "auctioneer": "s1", "item_name": "Hyperion", "item_lore": "§6Legendary", "starting_bid": 1000000, "highest_bid_amount": 0, "end": 1704110400000, "bin": true},
    {"uuid": "a2", "auctioneer": "s2", "item_name": "Broken", "item_lore": "", "starting_bid": -5, "highest_bid_amount": 0, "end": 1704110400000, "bin": true},
    {"uuid": "a3", "auctioneer": "s3", "item_name": "Bone", "item_lore": "", "starting_bid": 10, "highest_bid_amount": 12, "end": 0, "bin": false}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, breakerFailures int) (*api.ProviderClient, *shared.MockClock) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	client := api.NewProviderClientWithConfig(api.Endpoints{
		Auctions:  server.URL + "/auctions",
		Items:     server.URL + "/items",
		KatProfit: server.URL + "/kat",
		LowSupply: server.URL + "/supply",
	}, api.ClientOptions{
		Timeout:         5 * time.Second,
		RateLimit:       1000,
		Burst:           100,
		BreakerFailures: breakerFailures,
		BreakerCooldown: time.Minute,
		Clock:           clock,
	})
	return client, clock
}

func gzipBytes(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func brotliBytes(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	_, err := bw.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, bw.Close())
	return buf.Bytes()
}

func TestFetchAuctionsPage_DecodesGzipAndSkipsInvalidListings(t *testing.T) {
	// Arrange
	var gotPage, gotEncoding string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotEncoding = r.Header.Get("Accept-Encoding")
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(gzipBytes(t, auctionsPage))
	}, 5)

	// Act
	listings, err := client.FetchAuctionsPage(context.Background(), 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "1", gotPage)
	assert.Contains(t, gotEncoding, "gzip")
	assert.Contains(t, gotEncoding, "br")
	require.Len(t, listings, 2)
	assert.Equal(t, "Hyperion", listings[0].ItemName())
	assert.Equal(t, int64(1_000_000), listings[0].StartingBid())
	assert.True(t, listings[0].IsBuyNow())
	assert.Equal(t, time.UnixMilli(1704110400000).UTC(), listings[0].EndTime())
	assert.Equal(t, "Bone", listings[1].ItemName())
	assert.True(t, listings[1].EndTime().IsZero())
}

func TestFetchAuctionsPage_DecodesBrotli(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write(brotliBytes(t, auctionsPage))
	}, 5)

	listings, err := client.FetchAuctionsPage(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, listings, 2)
}

func TestFetchAuctionsPage_ProviderFailureFlag(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "cause": "Invalid page"}`))
	}, 5)

	_, err := client.FetchAuctionsPage(context.Background(), 1)

	assert.ErrorIs(t, err, market.ErrTransportFailure)
	assert.Contains(t, err.Error(), "Invalid page")
}

func TestFetchAuctionsPage_NotFoundPastFirstPageIsEnd(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}, 5)

	listings, err := client.FetchAuctionsPage(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, listings)

	_, err = client.FetchAuctionsPage(context.Background(), 1)
	var transportErr *market.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusNotFound, transportErr.StatusCode)
}

func TestFetch_NonSuccessStatusIsTransportError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}, 5)

	_, err := client.FetchItemCatalog(context.Background())

	var transportErr *market.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, market.EndpointItems, transportErr.Endpoint)
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestFetch_UndecodableBodyIsTransportError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}, 5)

	_, err := client.FetchSupplyFeed(context.Background())

	assert.ErrorIs(t, err, market.ErrTransportFailure)
}

func TestFetchProfitFeed_MapsRecords(t *testing.T) {
	// Arrange
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
		  {"originAuctionName": "Tiger", "referenceAuction": "ref-1", "targetRarity": "LEGENDARY",
		   "materialCost": 500000, "purchaseCost": 1500000, "median": 4000000,
		   "coreData": {"baseRarity": "EPIC", "hours": 24, "material": "Enchanted Raw Beef", "amount": 64, "cost": 250000}},
		  {"median": 10, "coreData": {"baseRarity": "RARE"}}
		]`))
	}, 5)

	// Act
	records, err := client.FetchProfitFeed(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, market.ProfitRecord{
		OriginAuctionName: "Tiger",
		ReferenceAuction:  "ref-1",
		BaseRarity:        "EPIC",
		TargetRarity:      "LEGENDARY",
		Hours:             24,
		Material:          "Enchanted Raw Beef",
		MaterialAmount:    64,
		MaterialCost:      2_000_000,
		UpgradeCost:       250_000,
		Median:            4_000_000,
	}, records[0])

	assert.Equal(t, api.NotAvailable, records[1].OriginAuctionName)
	assert.Equal(t, api.NotAvailable, records[1].Material)
	assert.Equal(t, "EPIC", records[1].TargetRarity)
}

func TestFetchSupplyFeedAndCatalog_MapRecords(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/supply":
			_, _ = w.Write([]byte(`[{"tag": "WITHER_GOGGLES", "lbinData": {"lowest": 1000, "secondLowest": 1500}, "median": 3000}]`))
		case "/items":
			_, _ = w.Write([]byte(`[{"tag": "WITHER_GOGGLES", "name": "Wither Goggles", "flags": "AUCTION"}]`))
		}
	}, 5)

	supply, err := client.FetchSupplyFeed(context.Background())
	require.NoError(t, err)
	entries, err := client.FetchItemCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []market.SupplyRecord{{Tag: "WITHER_GOGGLES", Lowest: 1000, SecondLowest: 1500, Median: 3000}}, supply)
	require.Len(t, entries, 1)
	assert.Equal(t, "Wither Goggles", entries[0].Name)
}

func TestClient_CircuitOpensAfterRepeatedServerErrors(t *testing.T) {
	// Arrange
	var hits int32
	client, clock := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}, 2)

	// Act
	_, err1 := client.FetchSupplyFeed(context.Background())
	_, err2 := client.FetchSupplyFeed(context.Background())
	_, err3 := client.FetchSupplyFeed(context.Background())

	// Assert
	assert.Error(t, err1)
	assert.Error(t, err2)
	assert.ErrorIs(t, err3, api.ErrCircuitOpen)
	assert.ErrorIs(t, err3, market.ErrTransportFailure)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	assert.Equal(t, api.CircuitOpen, client.Breaker().State())

	// After the cooldown a probe goes through again
	clock.Advance(2 * time.Minute)
	_, err4 := client.FetchSupplyFeed(context.Background())
	assert.False(t, errors.Is(err4, api.ErrCircuitOpen))
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, 1)

	for i := 0; i < 3; i++ {
		_, err := client.FetchItemCatalog(context.Background())
		assert.False(t, errors.Is(err, api.ErrCircuitOpen))
	}

	assert.Equal(t, api.CircuitClosed, client.Breaker().State())
}

func TestClient_CancelledContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchItemCatalog(ctx)

	assert.ErrorIs(t, err, market.ErrTransportFailure)
	assert.Equal(t, api.CircuitClosed, client.Breaker().State())
}
