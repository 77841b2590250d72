package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Zackmartin238/HyFlipper/internal/application/runner"
)

// renderOptions controls how an outcome is printed
type renderOptions struct {
	JSON     bool
	ShowLore bool
}

// renderOutcome prints a terminal outcome: a table for READY, the reason otherwise
func renderOutcome(out io.Writer, outcome *runner.Outcome, opts renderOptions) error {
	if opts.JSON {
		return renderJSON(out, outcome)
	}

	if !outcome.IsReady() {
		fmt.Fprintln(out, outcome.Reason)
		return nil
	}

	switch {
	case outcome.Auctions != nil:
		return renderAuctions(out, outcome, opts.ShowLore)
	case outcome.Profits != nil:
		return renderProfits(out, outcome)
	case outcome.Margins != nil:
		return renderMargins(out, outcome)
	}

	return fmt.Errorf("outcome %s has no result", outcome.RunID)
}

func renderJSON(out io.Writer, outcome *runner.Outcome) error {
	payload := map[string]interface{}{
		"run_id":      outcome.RunID,
		"mode":        outcome.Mode,
		"state":       outcome.State,
		"started_at":  outcome.StartedAt,
		"finished_at": outcome.FinishedAt,
	}
	if outcome.Reason != "" {
		payload["reason"] = outcome.Reason
	}
	switch {
	case outcome.Auctions != nil:
		payload["listings"] = outcome.Auctions.Listings
		payload["total_matched"] = outcome.Auctions.TotalMatched
	case outcome.Profits != nil:
		payload["opportunities"] = outcome.Profits.Opportunities
	case outcome.Margins != nil:
		payload["entries"] = outcome.Margins.Entries
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func renderAuctions(out io.Writer, outcome *runner.Outcome, showLore bool) error {
	result := outcome.Auctions
	fmt.Fprintf(out, "\n=== Auctions (%d of %d matching, %d scanned) ===\n\n",
		len(result.Listings), result.TotalMatched, result.TotalScanned)

	if len(result.Listings) == 0 {
		fmt.Fprintln(out, "No matching auctions found")
		return nil
	}

	if showLore {
		for _, l := range result.Listings {
			fmt.Fprintf(out, "Item Name: %s\n", l.ItemName)
			fmt.Fprintf(out, "Starting Bid: %s\n", l.StartingBidDisplay)
			fmt.Fprintf(out, "Highest Bid: %s\n", l.HighestBidDisplay)
			fmt.Fprintf(out, "BIN: %t\n", l.BuyNow)
			fmt.Fprintf(out, "End Time: %s (UTC)\n", l.EndTime)
			fmt.Fprintf(out, "Time Left: %s\n", l.TimeLeft)
			fmt.Fprintf(out, "Seller: %s\n", l.SellerID)
			fmt.Fprintf(out, "UUID: %s\n\n", l.UUID)
			fmt.Fprintf(out, "%s\n", l.Lore)
			fmt.Fprintln(out, strings.Repeat("-", 60))
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tSTARTING BID\tHIGHEST BID\tBIN\tENDS (UTC)\tTIME LEFT")
	fmt.Fprintln(w, "----\t------------\t-----------\t---\t----------\t---------")
	for _, l := range result.Listings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ItemName,
			l.StartingBidDisplay,
			l.HighestBidDisplay,
			yesNo(l.BuyNow),
			l.EndTime,
			l.TimeLeft,
		)
	}
	return w.Flush()
}

func renderProfits(out io.Writer, outcome *runner.Outcome) error {
	result := outcome.Profits
	fmt.Fprintf(out, "\n=== Kat Profit (%d of %d) ===\n\n", len(result.Opportunities), result.TotalRanked)

	if len(result.Opportunities) == 0 {
		fmt.Fprintln(out, "No upgrade opportunities found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AUCTION\tRARITY\tTIME\tMATERIAL\tMATERIAL COST\tKAT COST\tTOTAL COST\tMEDIAN\tPROFIT")
	fmt.Fprintln(w, "-------\t------\t----\t--------\t-------------\t--------\t----------\t------\t------")
	for _, o := range result.Opportunities {
		material := o.MaterialName
		if o.MaterialAmount > 0 {
			material = fmt.Sprintf("%dx %s", o.MaterialAmount, o.MaterialName)
		}
		fmt.Fprintf(w, "%s\t%s → %s\t%gh\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.OriginName,
			o.OriginalRarity,
			o.TargetRarity,
			o.DurationHours,
			material,
			o.MaterialCostDisplay,
			o.ConversionCostDisplay,
			o.TotalCostDisplay,
			o.MedianSalePriceDisplay,
			o.ProfitDisplay,
		)
	}
	return w.Flush()
}

func renderMargins(out io.Writer, outcome *runner.Outcome) error {
	result := outcome.Margins
	fmt.Fprintf(out, "\n=== Lowest Supply Auctions (%d of %d) ===\n\n", len(result.Entries), result.TotalRanked)

	if len(result.Entries) == 0 {
		fmt.Fprintln(out, "No low-supply items found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "ITEM\tLOWEST BIN\tSECOND LOWEST\tMEDIAN\tMARGIN\tREAL MARGIN\t")
	for _, e := range result.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			e.ItemName,
			e.LowestPriceDisplay,
			e.SecondLowestPriceDisplay,
			e.MedianPriceDisplay,
			e.MarginDisplay,
			e.RealMarginDisplay,
		)
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
