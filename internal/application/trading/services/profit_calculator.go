package services

import (
	"context"

	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
	"github.com/Zackmartin238/HyFlipper/internal/domain/trading"
)

const (
	ReasonProfitFeedUnavailable = "Failed to fetch Kat profit data. Please check your connection."
	ReasonCatalogUnavailable    = "Failed to fetch item data. Please check your connection."
	ReasonSupplyFeedUnavailable = "Failed to fetch lowest supply data. Please check your connection."
)

// ProfitCalculator turns the Kat profit feed into ranked profit opportunities
type ProfitCalculator struct {
	provider market.MarketDataProvider
}

// NewProfitCalculator creates a new profit calculator service
func NewProfitCalculator(provider market.MarketDataProvider) *ProfitCalculator {
	return &ProfitCalculator{provider: provider}
}

// RankProfitOpportunities returns every opportunity ordered by profit, highest first.
//
// The item catalog is fetched alongside the feed and must succeed too, so the
// ranking is never built against a stale catalog. Either failure yields an
// *market.UnavailableError and no partial result.
func (c *ProfitCalculator) RankProfitOpportunities(ctx context.Context) ([]*trading.ProfitOpportunity, error) {
	logger := logging.LoggerFromContext(ctx)

	records, err := c.provider.FetchProfitFeed(ctx)
	if err != nil {
		return nil, market.NewUnavailableError(ReasonProfitFeedUnavailable, err)
	}

	if _, err := c.provider.FetchItemCatalog(ctx); err != nil {
		return nil, market.NewUnavailableError(ReasonCatalogUnavailable, err)
	}

	opportunities := make([]*trading.ProfitOpportunity, 0, len(records))
	for _, record := range records {
		opportunities = append(opportunities, trading.NewProfitOpportunity(
			record.OriginAuctionName,
			record.ReferenceAuction,
			trading.UpgradePath{
				OriginalRarity: record.BaseRarity,
				TargetRarity:   record.TargetRarity,
				Hours:          record.Hours,
				Material:       record.Material,
				MaterialAmount: record.MaterialAmount,
			},
			record.MaterialCost,
			record.UpgradeCost,
			record.Median,
		))
	}

	trading.SortByProfit(opportunities)

	logger.Log(logging.LevelDebug, "Profit opportunities ranked", map[string]interface{}{
		"opportunities": len(opportunities),
	})

	return opportunities, nil
}
