package runner

import (
	"time"

	auctionQueries "github.com/Zackmartin238/HyFlipper/internal/application/auction/queries"
	tradingQueries "github.com/Zackmartin238/HyFlipper/internal/application/trading/queries"
	"github.com/Zackmartin238/HyFlipper/internal/domain/query"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
)

// Outcome is the single terminal update of one query run.
// Exactly one of Auctions, Profits or Margins is set when State is READY;
// none is set when State is UNAVAILABLE and Reason says why.
type Outcome struct {
	RunID      string
	Mode       query.Mode
	State      shared.QueryState
	Reason     string
	Auctions   *auctionQueries.SearchAuctionsResponse
	Profits    *tradingQueries.RankProfitOpportunitiesResponse
	Margins    *tradingQueries.RankSupplyMarginsResponse
	StartedAt  time.Time
	FinishedAt time.Time
}

// IsReady returns true if the run produced a result
func (o *Outcome) IsReady() bool {
	return o.State == shared.QueryStateReady
}

// Duration returns the wall time of the run
func (o *Outcome) Duration() time.Duration {
	return o.FinishedAt.Sub(o.StartedAt)
}

// ResultCount returns the number of displayed records (0 when unavailable)
func (o *Outcome) ResultCount() int {
	switch {
	case o.Auctions != nil:
		return len(o.Auctions.Listings)
	case o.Profits != nil:
		return len(o.Profits.Opportunities)
	case o.Margins != nil:
		return len(o.Margins.Entries)
	}
	return 0
}
