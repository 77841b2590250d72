package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/Zackmartin238/HyFlipper/internal/domain/query"
)

// ============================================================================
// Feed fixtures
// ============================================================================

func (w *marketWorld) theItemCatalogContains(table *godog.Table) error {
	rows := tableRows(table)
	entries := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, map[string]interface{}{"tag": row["tag"], "name": row["name"]})
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.catalog = entries
	return nil
}

func (w *marketWorld) theItemCatalogIsUnreachable() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.catalogDown = true
	return nil
}

func (w *marketWorld) theLowSupplyFeedContains(table *godog.Table) error {
	rows := tableRows(table)
	records := make([]map[string]interface{}, 0, len(rows))
	for i, row := range rows {
		lowest, err := parseFloat(row["lowest"])
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		second, err := parseFloat(row["second_lowest"])
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		median, err := parseFloat(row["median"])
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, map[string]interface{}{
			"tag":      row["tag"],
			"lbinData": map[string]interface{}{"lowest": lowest, "secondLowest": second},
			"median":   median,
		})
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.supply = records
	return nil
}

func (w *marketWorld) theKatProfitFeedContains(table *godog.Table) error {
	rows := tableRows(table)
	records := make([]map[string]interface{}, 0, len(rows))
	for i, row := range rows {
		values := make(map[string]float64, 4)
		for _, key := range []string{"material_cost", "purchase_cost", "kat_cost", "median"} {
			v, err := parseFloat(row[key])
			if err != nil {
				return fmt.Errorf("row %d, %s: %w", i+1, key, err)
			}
			values[key] = v
		}
		records = append(records, map[string]interface{}{
			"originAuctionName": row["origin"],
			"materialCost":      values["material_cost"],
			"purchaseCost":      values["purchase_cost"],
			"median":            values["median"],
			"coreData": map[string]interface{}{
				"baseRarity": row["base_rarity"],
				"hours":      24,
				"material":   "Enchanted Bone",
				"amount":     8,
				"cost":       values["kat_cost"],
			},
		})
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.profit = records
	return nil
}

func (w *marketWorld) theKatProfitFeedIsUnreachable() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.profitFeedDown = true
	return nil
}

// ============================================================================
// Ranking steps
// ============================================================================

func (w *marketWorld) iRankLowSupplyMargins() error {
	return w.submit(query.Config{Mode: query.ModeSupplyRanking})
}

func (w *marketWorld) iRankKatProfitOpportunities() error {
	return w.submit(query.Config{Mode: query.ModeProfitRanking})
}

// ============================================================================
// Assertions
// ============================================================================

func (w *marketWorld) theMarginRankingShouldBe(table *godog.Table) error {
	if w.outcome == nil || w.outcome.Margins == nil {
		return fmt.Errorf("no margin result")
	}
	expected := tableRows(table)
	entries := w.outcome.Margins.Entries
	if len(entries) != len(expected) {
		return fmt.Errorf("expected %d entries, got %d", len(expected), len(entries))
	}
	for i, row := range expected {
		e := entries[i]
		if e.ItemName != row["item"] || e.MarginDisplay != row["margin"] || e.RealMarginDisplay != row["real_margin"] {
			return fmt.Errorf("entry %d: expected %s (%s / %s), got %s (%s / %s)",
				i+1, row["item"], row["margin"], row["real_margin"], e.ItemName, e.MarginDisplay, e.RealMarginDisplay)
		}
	}
	return nil
}

func (w *marketWorld) theProfitRankingShouldBe(table *godog.Table) error {
	if w.outcome == nil || w.outcome.Profits == nil {
		return fmt.Errorf("no profit result")
	}
	expected := tableRows(table)
	opportunities := w.outcome.Profits.Opportunities
	if len(opportunities) != len(expected) {
		return fmt.Errorf("expected %d opportunities, got %d", len(expected), len(opportunities))
	}
	for i, row := range expected {
		o := opportunities[i]
		if o.OriginName != row["origin"] || o.TargetRarity != row["target_rarity"] || o.ProfitDisplay != row["profit"] {
			return fmt.Errorf("opportunity %d: expected %s → %s at %s, got %s → %s at %s",
				i+1, row["origin"], row["target_rarity"], row["profit"], o.OriginName, o.TargetRarity, o.ProfitDisplay)
		}
	}
	return nil
}

func registerRankingSteps(ctx *godog.ScenarioContext, w *marketWorld) {
	ctx.Step(`^the item catalog contains:$`, w.theItemCatalogContains)
	ctx.Step(`^the item catalog is unreachable$`, w.theItemCatalogIsUnreachable)
	ctx.Step(`^the low-supply feed contains:$`, w.theLowSupplyFeedContains)
	ctx.Step(`^the Kat profit feed contains:$`, w.theKatProfitFeedContains)
	ctx.Step(`^the Kat profit feed is unreachable$`, w.theKatProfitFeedIsUnreachable)

	ctx.Step(`^I rank low-supply margins$`, w.iRankLowSupplyMargins)
	ctx.Step(`^I rank Kat profit opportunities$`, w.iRankKatProfitOpportunities)

	ctx.Step(`^the margin ranking should be:$`, w.theMarginRankingShouldBe)
	ctx.Step(`^the profit ranking should be:$`, w.theProfitRankingShouldBe)
}
