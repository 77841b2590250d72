package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/Zackmartin238/HyFlipper/internal/application/auction/services"
	"github.com/Zackmartin238/HyFlipper/internal/application/auction/types"
	"github.com/Zackmartin238/HyFlipper/internal/application/mediator"
	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
	"github.com/Zackmartin238/HyFlipper/pkg/utils"
)

// SearchAuctionsQuery requests every listing matching the search criteria
type SearchAuctionsQuery struct {
	Keyword    string           // Case-insensitive substring of the item name ("" matches all)
	BuyNowOnly bool             // true keeps only BIN listings, false only bid auctions
	SortMode   auction.SortMode // Ordering of the result
	Limit      int              // Maximum listings to return (0 = all)
}

// SearchAuctionsResponse contains the matching listings
type SearchAuctionsResponse struct {
	Listings     []*types.ListingDTO
	TotalScanned int
	TotalMatched int
}

// SearchAuctionsHandler handles auction search queries
type SearchAuctionsHandler struct {
	aggregator *services.AuctionAggregator
	clock      shared.Clock
}

// NewSearchAuctionsHandler creates a new handler
// If clock is nil, uses RealClock
func NewSearchAuctionsHandler(aggregator *services.AuctionAggregator, clock shared.Clock) *SearchAuctionsHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SearchAuctionsHandler{
		aggregator: aggregator,
		clock:      clock,
	}
}

// Handle executes the query
func (h *SearchAuctionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*SearchAuctionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	listings, err := h.aggregator.Aggregate(ctx, query.Keyword)
	if err != nil {
		return nil, err
	}

	matched, err := auction.FilterAndSort(listings, auction.SearchCriteria{
		Keyword:    query.Keyword,
		BuyNowOnly: query.BuyNowOnly,
		SortMode:   query.SortMode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter listings: %w", err)
	}

	total := len(matched)
	if query.Limit > 0 && len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}

	return &SearchAuctionsResponse{
		Listings:     convertListingsToDTOs(matched, h.clock.Now()),
		TotalScanned: len(listings),
		TotalMatched: total,
	}, nil
}

// convertListingsToDTOs converts domain listings to display DTOs.
// Time left is measured against now, which is taken once per conversion.
func convertListingsToDTOs(listings []*auction.Listing, now time.Time) []*types.ListingDTO {
	dtos := make([]*types.ListingDTO, len(listings))
	for i, l := range listings {
		dtos[i] = &types.ListingDTO{
			UUID:               l.UUID(),
			ItemName:           l.ItemName(),
			Lore:               auction.CleanLore(l.Lore()),
			SellerID:           l.SellerID(),
			StartingBid:        l.StartingBid(),
			HighestBid:         l.HighestBid(),
			StartingBidDisplay: utils.FormatCoins(l.StartingBid()),
			HighestBidDisplay:  utils.FormatCoins(l.HighestBid()),
			EndTime:            utils.FormatTimestamp(l.EndTime()),
			TimeLeft:           utils.FormatTimeLeft(l.EndTime(), now),
			BuyNow:             l.IsBuyNow(),
		}
	}
	return dtos
}
