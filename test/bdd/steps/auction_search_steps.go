package steps

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/query"
)

// ============================================================================
// Auction house fixtures
// ============================================================================

func (w *marketWorld) theAuctionHouseHasListingsOnPage(page int, table *godog.Table) error {
	rows := tableRows(table)
	listings := make([]map[string]interface{}, 0, len(rows))
	for i, row := range rows {
		bid, err := strconv.ParseInt(row["starting_bid"], 10, 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid starting_bid %q", i+1, row["starting_bid"])
		}
		listings = append(listings, map[string]interface{}{
			"uuid":               fmt.Sprintf("p%d-%d", page, i+1),
			"auctioneer":         "seller",
			"item_name":          row["item_name"],
			"item_lore":          row["lore"],
			"starting_bid":       bid,
			"highest_bid_amount": 0,
			"end":                farFutureEnd,
			"bin":                row["bin"] == "true",
		})
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pages[page] = listings
	return nil
}

func (w *marketWorld) theAuctionHouseIsUnreachable() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.auctionsDown = true
	return nil
}

// ============================================================================
// Search steps
// ============================================================================

func (w *marketWorld) iSearchAuctions(keyword, buyNow, sortMode string) error {
	return w.submit(query.Config{
		Mode:       query.ModeAuctionSearch,
		Keyword:    keyword,
		BuyNowOnly: buyNow == "with",
		SortMode:   auction.SortMode(sortMode),
	})
}

// ============================================================================
// Assertions
// ============================================================================

func (w *marketWorld) listingsShouldBeReturned(count int) error {
	if w.outcome == nil || w.outcome.Auctions == nil {
		return fmt.Errorf("no auction result")
	}
	if got := len(w.outcome.Auctions.Listings); got != count {
		return fmt.Errorf("expected %d listings, got %d", count, got)
	}
	return nil
}

func (w *marketWorld) listingShouldBeWithStartingBid(position int, name, bid string) error {
	if err := w.listingsAtLeast(position); err != nil {
		return err
	}
	l := w.outcome.Auctions.Listings[position-1]
	if l.ItemName != name || l.StartingBidDisplay != bid {
		return fmt.Errorf("listing %d: expected %s at %s, got %s at %s", position, name, bid, l.ItemName, l.StartingBidDisplay)
	}
	return nil
}

func (w *marketWorld) listingShouldHaveLore(position int, lore string) error {
	if err := w.listingsAtLeast(position); err != nil {
		return err
	}
	if got := w.outcome.Auctions.Listings[position-1].Lore; got != lore {
		return fmt.Errorf("listing %d: expected lore %q, got %q", position, lore, got)
	}
	return nil
}

func (w *marketWorld) theAuctionFeedShouldHaveBeenRequested(times int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.auctionRequests != times {
		return fmt.Errorf("expected %d auction page requests, got %d", times, w.auctionRequests)
	}
	return nil
}

func (w *marketWorld) listingsAtLeast(position int) error {
	if w.outcome == nil || w.outcome.Auctions == nil {
		return fmt.Errorf("no auction result")
	}
	if position < 1 || position > len(w.outcome.Auctions.Listings) {
		return fmt.Errorf("listing %d out of range (%d listings)", position, len(w.outcome.Auctions.Listings))
	}
	return nil
}

func registerAuctionSearchSteps(ctx *godog.ScenarioContext, w *marketWorld) {
	ctx.Step(`^the auction house has the following listings on page (\d+):$`, w.theAuctionHouseHasListingsOnPage)
	ctx.Step(`^the auction house is unreachable$`, w.theAuctionHouseIsUnreachable)

	ctx.Step(`^I search auctions for "([^"]*)" (with|without) buy-now(?: only)? sorted by "([^"]*)"$`, w.iSearchAuctions)

	ctx.Step(`^(\d+) listings should be returned$`, w.listingsShouldBeReturned)
	ctx.Step(`^listing (\d+) should be "([^"]*)" with starting bid "([^"]*)"$`, w.listingShouldBeWithStartingBid)
	ctx.Step(`^listing (\d+) should have lore "([^"]*)"$`, w.listingShouldHaveLore)
	ctx.Step(`^the auction feed should have been requested (\d+) times$`, w.theAuctionFeedShouldHaveBeenRequested)
}
