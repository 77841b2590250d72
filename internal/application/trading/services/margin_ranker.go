package services

import (
	"context"

	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
	"github.com/Zackmartin238/HyFlipper/internal/domain/catalog"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
	"github.com/Zackmartin238/HyFlipper/internal/domain/trading"
)

// MarginRanker joins the low-supply feed with the item catalog and ranks by real margin
type MarginRanker struct {
	provider market.MarketDataProvider
}

// NewMarginRanker creates a new margin ranker service
func NewMarginRanker(provider market.MarketDataProvider) *MarginRanker {
	return &MarginRanker{provider: provider}
}

// RankSupplyMargins returns one entry per supply record ordered by real margin, highest first.
// Both inputs are required: if either fetch fails nothing is returned.
// Tags missing from the catalog resolve to catalog.UnknownItemName.
func (r *MarginRanker) RankSupplyMargins(ctx context.Context) ([]*trading.SupplyMarginEntry, error) {
	logger := logging.LoggerFromContext(ctx)

	records, err := r.provider.FetchSupplyFeed(ctx)
	if err != nil {
		return nil, market.NewUnavailableError(ReasonSupplyFeedUnavailable, err)
	}

	entries, err := r.provider.FetchItemCatalog(ctx)
	if err != nil {
		return nil, market.NewUnavailableError(ReasonCatalogUnavailable, err)
	}

	names := catalog.NewCatalog(entries)

	ranked := make([]*trading.SupplyMarginEntry, 0, len(records))
	unknown := 0
	for _, record := range records {
		if _, ok := names.Lookup(record.Tag); !ok {
			unknown++
		}

		ranked = append(ranked, trading.NewSupplyMarginEntry(
			names.DisplayName(record.Tag),
			record.Lowest,
			record.SecondLowest,
			record.Median,
		))
	}

	trading.SortByRealMargin(ranked)

	logger.Log(logging.LevelDebug, "Supply margins ranked", map[string]interface{}{
		"entries":       len(ranked),
		"unknown_items": unknown,
	})

	return ranked, nil
}
