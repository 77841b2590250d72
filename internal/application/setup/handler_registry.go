package setup

import (
	"reflect"

	auctionQueries "github.com/Zackmartin238/HyFlipper/internal/application/auction/queries"
	auctionServices "github.com/Zackmartin238/HyFlipper/internal/application/auction/services"
	"github.com/Zackmartin238/HyFlipper/internal/application/mediator"
	tradingQueries "github.com/Zackmartin238/HyFlipper/internal/application/trading/queries"
	tradingServices "github.com/Zackmartin238/HyFlipper/internal/application/trading/services"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	provider market.MarketDataProvider
	clock    shared.Clock
	maxPages int
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// provider is normally the result cache wrapping the HTTP client.
func NewHandlerRegistry(provider market.MarketDataProvider, clock shared.Clock, maxPages int) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		provider: provider,
		clock:    clock,
		maxPages: maxPages,
	}
}

// RegisterAuctionHandlers registers the auction search query handler
//
// This method registers:
//   - SearchAuctionsQuery → SearchAuctionsHandler
func (r *HandlerRegistry) RegisterAuctionHandlers(m mediator.Mediator) error {
	aggregator := auctionServices.NewAuctionAggregator(r.provider, r.maxPages)

	return m.Register(
		reflect.TypeOf(&auctionQueries.SearchAuctionsQuery{}),
		auctionQueries.NewSearchAuctionsHandler(aggregator, r.clock),
	)
}

// RegisterTradingHandlers registers the two ranking query handlers
//
// This method registers:
//   - RankProfitOpportunitiesQuery → RankProfitOpportunitiesHandler
//   - RankSupplyMarginsQuery → RankSupplyMarginsHandler
func (r *HandlerRegistry) RegisterTradingHandlers(m mediator.Mediator) error {
	profitHandler := tradingQueries.NewRankProfitOpportunitiesHandler(
		tradingServices.NewProfitCalculator(r.provider),
	)
	if err := m.Register(
		reflect.TypeOf(&tradingQueries.RankProfitOpportunitiesQuery{}),
		profitHandler,
	); err != nil {
		return err
	}

	marginHandler := tradingQueries.NewRankSupplyMarginsHandler(
		tradingServices.NewMarginRanker(r.provider),
	)
	if err := m.Register(
		reflect.TypeOf(&tradingQueries.RankSupplyMarginsQuery{}),
		marginHandler,
	); err != nil {
		return err
	}

	return nil
}

// CreateConfiguredMediator creates a new mediator with every query handler registered
// and the given middlewares installed (outermost first)
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()

	for _, mw := range middlewares {
		if mw != nil {
			m.RegisterMiddleware(mw)
		}
	}

	if err := r.RegisterAuctionHandlers(m); err != nil {
		return nil, err
	}

	if err := r.RegisterTradingHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
