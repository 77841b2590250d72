package trading_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zackmartin238/HyFlipper/internal/domain/trading"
)

func newOpportunity(t *testing.T, name string, material, conversion, median float64) *trading.ProfitOpportunity {
	t.Helper()
	return trading.NewProfitOpportunity(name, name+" ref", trading.UpgradePath{
		OriginalRarity: "EPIC",
		TargetRarity:   "LEGENDARY",
		Hours:          24,
		Material:       "Enchanted Bone",
		MaterialAmount: 8,
	}, material, conversion, median)
}

func TestNewProfitOpportunity_DerivesTotalCostAndProfit(t *testing.T) {
	// Act
	o := newOpportunity(t, "Tiger", 1_000_000, 250_000, 2_000_000)

	// Assert
	assert.Equal(t, 1_250_000.0, o.TotalCost())
	assert.Equal(t, 750_000.0, o.Profit())
	assert.Equal(t, o.MedianSalePrice()-o.TotalCost(), o.Profit())
	assert.True(t, o.IsProfitable())
	assert.Equal(t, "EPIC", o.OriginalRarity())
	assert.Equal(t, "LEGENDARY", o.TargetRarity())
	assert.Equal(t, 8, o.MaterialAmount())
}

func TestNewProfitOpportunity_NegativeProfitIsAllowed(t *testing.T) {
	o := newOpportunity(t, "Loser", 3_000_000, 100_000, 1_000_000)

	assert.Equal(t, -2_100_000.0, o.Profit())
	assert.False(t, o.IsProfitable())
}

func TestNewProfitOpportunity_KeepsNegativeInputs(t *testing.T) {
	o := newOpportunity(t, "Refund", -500, 200, -100)

	assert.Equal(t, -300.0, o.TotalCost())
	assert.Equal(t, 200.0, o.Profit())
	assert.Equal(t, o.MedianSalePrice()-o.TotalCost(), o.Profit())
}

func TestSortByProfit_HighestFirstWithStableTies(t *testing.T) {
	// Arrange
	opportunities := []*trading.ProfitOpportunity{
		newOpportunity(t, "low", 100, 0, 200),
		newOpportunity(t, "tie-a", 100, 0, 600),
		newOpportunity(t, "high", 100, 0, 1_100),
		newOpportunity(t, "tie-b", 100, 0, 600),
	}

	// Act
	trading.SortByProfit(opportunities)

	// Assert
	order := make([]string, len(opportunities))
	for i, o := range opportunities {
		order[i] = o.OriginName()
	}
	assert.Equal(t, []string{"high", "tie-a", "tie-b", "low"}, order)
}

func TestNewSupplyMarginEntry_DerivesBothMargins(t *testing.T) {
	// Act
	e := trading.NewSupplyMarginEntry("Wither Goggles", 1_000, 1_500, 3_000)

	// Assert
	assert.Equal(t, 500.0, e.Margin())
	assert.Equal(t, 2_000.0, e.RealMargin())
}

func TestNewSupplyMarginEntry_KeepsNegativePrices(t *testing.T) {
	e := trading.NewSupplyMarginEntry("x", -1, 0, 4)

	assert.Equal(t, 1.0, e.Margin())
	assert.Equal(t, 5.0, e.RealMargin())
}

func TestSortByRealMargin_IgnoresPlainMargin(t *testing.T) {
	// Arrange: "wide" has the biggest lowest→second gap but the smallest real margin
	wide := trading.NewSupplyMarginEntry("wide", 100, 10_000, 200)
	deep := trading.NewSupplyMarginEntry("deep", 100, 110, 5_000)
	entries := []*trading.SupplyMarginEntry{wide, deep}

	// Act
	trading.SortByRealMargin(entries)

	// Assert
	assert.Equal(t, "deep", entries[0].ItemName())
	assert.Equal(t, "wide", entries[1].ItemName())
}
