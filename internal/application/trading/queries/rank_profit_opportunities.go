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

// RankProfitOpportunitiesQuery requests the Kat upgrade ranking
type RankProfitOpportunitiesQuery struct {
	Limit          int  // Maximum opportunities to return (0 = all)
	ProfitableOnly bool // Drop opportunities with profit <= 0
}

// RankProfitOpportunitiesResponse contains the ranked opportunities
type RankProfitOpportunitiesResponse struct {
	Opportunities []*types.ProfitOpportunityDTO
	TotalRanked   int
}

// RankProfitOpportunitiesHandler handles profit ranking queries
type RankProfitOpportunitiesHandler struct {
	calculator *services.ProfitCalculator
}

// NewRankProfitOpportunitiesHandler creates a new handler
func NewRankProfitOpportunitiesHandler(calculator *services.ProfitCalculator) *RankProfitOpportunitiesHandler {
	return &RankProfitOpportunitiesHandler{calculator: calculator}
}

// Handle executes the query
func (h *RankProfitOpportunitiesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*RankProfitOpportunitiesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	opportunities, err := h.calculator.RankProfitOpportunities(ctx)
	if err != nil {
		return nil, err
	}

	total := len(opportunities)

	if query.ProfitableOnly {
		kept := opportunities[:0:0]
		for _, o := range opportunities {
			if o.IsProfitable() {
				kept = append(kept, o)
			}
		}
		opportunities = kept
	}

	if query.Limit > 0 && len(opportunities) > query.Limit {
		opportunities = opportunities[:query.Limit]
	}

	return &RankProfitOpportunitiesResponse{
		Opportunities: convertOpportunitiesToDTOs(opportunities),
		TotalRanked:   total,
	}, nil
}

// convertOpportunitiesToDTOs converts domain opportunities to DTOs
func convertOpportunitiesToDTOs(opportunities []*trading.ProfitOpportunity) []*types.ProfitOpportunityDTO {
	dtos := make([]*types.ProfitOpportunityDTO, len(opportunities))
	for i, o := range opportunities {
		dtos[i] = &types.ProfitOpportunityDTO{
			OriginName:      o.OriginName(),
			ReferenceName:   o.ReferenceName(),
			OriginalRarity:  o.OriginalRarity(),
			TargetRarity:    o.TargetRarity(),
			DurationHours:   o.DurationHours(),
			MaterialName:    o.MaterialName(),
			MaterialAmount:  o.MaterialAmount(),
			MaterialCost:    o.MaterialCost(),
			ConversionCost:  o.ConversionCost(),
			TotalCost:       o.TotalCost(),
			MedianSalePrice: o.MedianSalePrice(),
			Profit:          o.Profit(),

			MaterialCostDisplay:    utils.FormatMagnitude(o.MaterialCost()),
			ConversionCostDisplay:  utils.FormatMagnitude(o.ConversionCost()),
			TotalCostDisplay:       utils.FormatMagnitude(o.TotalCost()),
			MedianSalePriceDisplay: utils.FormatMagnitude(o.MedianSalePrice()),
			ProfitDisplay:          utils.FormatMagnitude(o.Profit()),
		}
	}
	return dtos
}
