package market

import (
	"context"

	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/catalog"
)

// Endpoint names used for cache keys, logs and metrics
const (
	EndpointAuctions  = "auctions"
	EndpointItems     = "items"
	EndpointKatProfit = "kat_profit"
	EndpointLowSupply = "low_supply"
)

// MarketDataProvider is the read-only contract over the four remote feeds.
//
// Every method performs at most one round trip. A non-success status, a
// transport error or an undecodable body is reported as a *TransportError;
// implementations never retry.
type MarketDataProvider interface {
	// FetchAuctionsPage returns one page of auction listings (pages start at 1).
	// An empty slice with a nil error marks the end of the listing set.
	FetchAuctionsPage(ctx context.Context, page int) ([]*auction.Listing, error)

	// FetchItemCatalog returns the tag → name item catalog
	FetchItemCatalog(ctx context.Context) ([]catalog.Entry, error)

	// FetchProfitFeed returns the precomputed Kat upgrade profit records
	FetchProfitFeed(ctx context.Context) ([]ProfitRecord, error)

	// FetchSupplyFeed returns the precomputed low-supply lowest-BIN records
	FetchSupplyFeed(ctx context.Context) ([]SupplyRecord, error)
}

// DTOs for data transfer

// ProfitRecord is one Kat upgrade opportunity as delivered by the profit feed.
// MaterialCost already includes the purchase price of the original item.
type ProfitRecord struct {
	OriginAuctionName string
	ReferenceAuction  string
	BaseRarity        string
	TargetRarity      string
	Hours             float64
	Material          string
	MaterialAmount    int
	MaterialCost      float64
	UpgradeCost       float64
	Median            float64
}

// SupplyRecord is one low-supply item as delivered by the supply feed
type SupplyRecord struct {
	Tag          string
	Lowest       float64
	SecondLowest float64
	Median       float64
}
