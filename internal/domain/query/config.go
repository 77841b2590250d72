package query

import (
	"fmt"

	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
)

// Mode selects which pipeline a query runs
type Mode string

const (
	// ModeAuctionSearch aggregates, filters and sorts auction listings
	ModeAuctionSearch Mode = "auction-search"

	// ModeProfitRanking ranks Kat upgrade opportunities by profit
	ModeProfitRanking Mode = "profit-ranking"

	// ModeSupplyRanking ranks low-supply items by real margin
	ModeSupplyRanking Mode = "supply-ranking"
)

// IsValid reports whether the mode is supported
func (m Mode) IsValid() bool {
	switch m {
	case ModeAuctionSearch, ModeProfitRanking, ModeSupplyRanking:
		return true
	}
	return false
}

// Config is the caller-supplied description of one query invocation.
// Keyword, BuyNowOnly and SortMode only apply to ModeAuctionSearch.
// Limit, ProfitableOnly and MinRealMargin trim ranked output; zero values disable them.
type Config struct {
	Mode           Mode
	Keyword        string
	BuyNowOnly     bool
	SortMode       auction.SortMode
	Limit          int
	ProfitableOnly bool
	MinRealMargin  float64
}

// Validate rejects unusable configurations before any fetch happens.
// An unknown sort mode is an error rather than a silently chosen default.
func (c Config) Validate() error {
	if !c.Mode.IsValid() {
		return shared.NewValidationError("mode", fmt.Sprintf("unsupported mode %q", c.Mode))
	}
	if c.Mode == ModeAuctionSearch && !c.SortMode.IsValid() {
		return shared.NewValidationError("sort_mode", fmt.Sprintf("unsupported sort mode %q", c.SortMode))
	}
	if c.Limit < 0 {
		return shared.NewValidationError("limit", "must not be negative")
	}
	return nil
}

// SearchCriteria extracts the auction-search settings
func (c Config) SearchCriteria() auction.SearchCriteria {
	return auction.SearchCriteria{
		Keyword:    c.Keyword,
		BuyNowOnly: c.BuyNowOnly,
		SortMode:   c.SortMode,
	}
}
