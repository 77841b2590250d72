package queries

import (
	"context"
	"fmt"

	"github.com/Zackmartin238/HyFlipper/internal/application/mediator"
	"github.com/Zackmartin238/HyFlipper/internal/application/trading/services"
	"github.com/Zackmartin238/HyFlipper/internal/application/trading/types"
	"github.com/Zackmartin238/HyFlipper/internal/domain/trading"
	"github.com/Zackmartin238/HyFlipper/pkg/utils"
)

// RankSupplyMarginsQuery requests the low-supply margin ranking
type RankSupplyMarginsQuery struct {
	Limit         int     // Maximum entries to return (0 = all)
	MinRealMargin float64 // Drop entries whose real margin is below this (0 = keep all)
}

// RankSupplyMarginsResponse contains the ranked entries
type RankSupplyMarginsResponse struct {
	Entries     []*types.SupplyMarginDTO
	TotalRanked int
}

// RankSupplyMarginsHandler handles supply margin ranking queries
type RankSupplyMarginsHandler struct {
	ranker *services.MarginRanker
}

// NewRankSupplyMarginsHandler creates a new handler
func NewRankSupplyMarginsHandler(ranker *services.MarginRanker) *RankSupplyMarginsHandler {
	return &RankSupplyMarginsHandler{ranker: ranker}
}

// Handle executes the query
func (h *RankSupplyMarginsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*RankSupplyMarginsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	entries, err := h.ranker.RankSupplyMargins(ctx)
	if err != nil {
		return nil, err
	}

	total := len(entries)

	// Entries are sorted by real margin, so the threshold cuts a prefix
	if query.MinRealMargin > 0 {
		cut := len(entries)
		for i, e := range entries {
			if e.RealMargin() < query.MinRealMargin {
				cut = i
				break
			}
		}
		entries = entries[:cut]
	}

	if query.Limit > 0 && len(entries) > query.Limit {
		entries = entries[:query.Limit]
	}

	return &RankSupplyMarginsResponse{
		Entries:     convertEntriesToDTOs(entries),
		TotalRanked: total,
	}, nil
}

// convertEntriesToDTOs converts domain entries to DTOs
func convertEntriesToDTOs(entries []*trading.SupplyMarginEntry) []*types.SupplyMarginDTO {
	dtos := make([]*types.SupplyMarginDTO, len(entries))
	for i, e := range entries {
		dtos[i] = &types.SupplyMarginDTO{
			ItemName:          e.ItemName(),
			LowestPrice:       e.LowestPrice(),
			SecondLowestPrice: e.SecondLowestPrice(),
			MedianPrice:       e.MedianPrice(),
			Margin:            e.Margin(),
			RealMargin:        e.RealMargin(),

			LowestPriceDisplay:       utils.FormatRoundedCoins(e.LowestPrice()),
			SecondLowestPriceDisplay: utils.FormatRoundedCoins(e.SecondLowestPrice()),
			MedianPriceDisplay:       utils.FormatRoundedCoins(e.MedianPrice()),
			MarginDisplay:            utils.FormatRoundedCoins(e.Margin()),
			RealMarginDisplay:        utils.FormatRoundedCoins(e.RealMargin()),
		}
	}
	return dtos
}
