package trading

import "sort"

// SupplyMarginEntry is an immutable low-supply arbitrage candidate.
//
//	margin     = secondLowestPrice - lowestPrice
//	realMargin = medianPrice - lowestPrice
//
// Ranking always uses realMargin.
type SupplyMarginEntry struct {
	itemName          string
	lowestPrice       float64
	secondLowestPrice float64
	medianPrice       float64
	margin            float64
	realMargin        float64
}

// NewSupplyMarginEntry creates an entry and derives both margins from the three prices.
func NewSupplyMarginEntry(itemName string, lowest, secondLowest, median float64) *SupplyMarginEntry {
	return &SupplyMarginEntry{
		itemName:          itemName,
		lowestPrice:       lowest,
		secondLowestPrice: secondLowest,
		medianPrice:       median,
		margin:            secondLowest - lowest,
		realMargin:        median - lowest,
	}
}

func (e *SupplyMarginEntry) ItemName() string           { return e.itemName }
func (e *SupplyMarginEntry) LowestPrice() float64       { return e.lowestPrice }
func (e *SupplyMarginEntry) SecondLowestPrice() float64 { return e.secondLowestPrice }
func (e *SupplyMarginEntry) MedianPrice() float64       { return e.medianPrice }
func (e *SupplyMarginEntry) Margin() float64            { return e.margin }
func (e *SupplyMarginEntry) RealMargin() float64        { return e.realMargin }

// SortByRealMargin orders entries by real margin, highest first.
// Ties keep their feed order.
func SortByRealMargin(entries []*SupplyMarginEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].realMargin > entries[j].realMargin
	})
}
