package services

import (
	"context"
	"fmt"

	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
)

// ReasonAuctionsUnavailable is reported when not even the first page could be fetched
const ReasonAuctionsUnavailable = "Failed to fetch auction data. Please check your connection."

// AuctionAggregator walks the paginated auction feed and concatenates every page.
// This is an application service that drives the provider port page by page.
type AuctionAggregator struct {
	provider market.MarketDataProvider
	maxPages int
}

// NewAuctionAggregator creates an aggregator. maxPages <= 0 means no page cap.
func NewAuctionAggregator(provider market.MarketDataProvider, maxPages int) *AuctionAggregator {
	return &AuctionAggregator{
		provider: provider,
		maxPages: maxPages,
	}
}

// Aggregate fetches pages 1, 2, 3, … until a page comes back empty.
//
// Algorithm:
//  1. Request the next page through the provider (normally the result cache)
//  2. Stop on an empty page, the page cap or context cancellation
//  3. On failure: page 1 → unavailable error; later pages → keep what was collected
//  4. Append the page in order (no dedup, pages are disjoint)
//
// The keyword is only logged: filtering happens after aggregation, so the
// same cached pages serve every keyword.
func (a *AuctionAggregator) Aggregate(ctx context.Context, keyword string) ([]*auction.Listing, error) {
	logger := logging.LoggerFromContext(ctx)

	listings := make([]*auction.Listing, 0)
	page := 1

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("auction aggregation cancelled at page %d: %w", page, err)
		}

		if a.maxPages > 0 && page > a.maxPages {
			logger.Log(logging.LevelInfo, "Page cap reached, stopping aggregation", map[string]interface{}{
				"max_pages": a.maxPages,
				"listings":  len(listings),
			})
			break
		}

		batch, err := a.provider.FetchAuctionsPage(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("auction aggregation cancelled at page %d: %w", page, ctx.Err())
			}
			if page == 1 {
				return nil, market.NewUnavailableError(ReasonAuctionsUnavailable, err)
			}
			logger.Log(logging.LevelWarn, "Auction page failed, keeping collected pages", map[string]interface{}{
				"page":     page,
				"listings": len(listings),
				"error":    err.Error(),
			})
			break
		}

		if len(batch) == 0 {
			break
		}

		listings = append(listings, batch...)
		page++
	}

	logger.Log(logging.LevelDebug, "Auction aggregation complete", map[string]interface{}{
		"keyword":  keyword,
		"pages":    page - 1,
		"listings": len(listings),
	})

	return listings, nil
}
