package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/query"
)

// auctionFlags holds the flags of the auction search mode
type auctionFlags struct {
	keyword  string
	buyNow   bool
	sortMode string
	limit    int
	showLore bool
}

func (f *auctionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.keyword, "keyword", "k", "", "Case-insensitive substring of the item name")
	cmd.Flags().BoolVar(&f.buyNow, "bin", false, "Show only Buy It Now listings (default: only bid auctions)")
	cmd.Flags().StringVarP(&f.sortMode, "sort", "s", string(auction.SortPriceAscending),
		fmt.Sprintf("Sort order: %s", joinSortModes()))
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Maximum listings to print (0 = all)")
	cmd.Flags().BoolVar(&f.showLore, "lore", false, "Print each listing's lore")
}

func (f *auctionFlags) config() query.Config {
	return query.Config{
		Mode:       query.ModeAuctionSearch,
		Keyword:    f.keyword,
		BuyNowOnly: f.buyNow,
		SortMode:   auction.SortMode(f.sortMode),
		Limit:      f.limit,
	}
}

// profitFlags holds the flags of the Kat profit ranking mode
type profitFlags struct {
	limit      int
	profitable bool
}

func (f *profitFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Maximum opportunities to print (0 = all)")
	cmd.Flags().BoolVar(&f.profitable, "profitable", false, "Hide opportunities with zero or negative profit")
}

func (f *profitFlags) config() query.Config {
	return query.Config{
		Mode:           query.ModeProfitRanking,
		Limit:          f.limit,
		ProfitableOnly: f.profitable,
	}
}

// supplyFlags holds the flags of the low-supply margin ranking mode
type supplyFlags struct {
	limit     int
	minMargin float64
}

func (f *supplyFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Maximum entries to print (0 = all)")
	cmd.Flags().Float64Var(&f.minMargin, "min-margin", 0, "Hide entries whose real margin is below this many coins")
}

func (f *supplyFlags) config() query.Config {
	return query.Config{
		Mode:          query.ModeSupplyRanking,
		Limit:         f.limit,
		MinRealMargin: f.minMargin,
	}
}

func joinSortModes() string {
	modes := auction.SortModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
