package trading

import "sort"

// UpgradePath describes the rarity upgrade a profit opportunity performs
type UpgradePath struct {
	OriginalRarity string
	TargetRarity   string
	Hours          float64
	Material       string
	MaterialAmount int
}

// ProfitOpportunity is an immutable upgrade/craft opportunity.
//
// Derived values are computed once during construction and have no setters:
//
//	totalCost = materialCost + conversionCost
//	profit    = medianSalePrice - totalCost
type ProfitOpportunity struct {
	originName      string
	referenceName   string
	path            UpgradePath
	materialCost    float64 // original item + upgrade materials
	conversionCost  float64 // Kat fee
	totalCost       float64
	medianSalePrice float64
	profit          float64
}

// NewProfitOpportunity creates a profit opportunity and derives its total cost
// and profit. Every feed record yields an opportunity, whatever its prices.
func NewProfitOpportunity(
	originName string,
	referenceName string,
	path UpgradePath,
	materialCost float64,
	conversionCost float64,
	medianSalePrice float64,
) *ProfitOpportunity {
	totalCost := materialCost + conversionCost

	return &ProfitOpportunity{
		originName:      originName,
		referenceName:   referenceName,
		path:            path,
		materialCost:    materialCost,
		conversionCost:  conversionCost,
		totalCost:       totalCost,
		medianSalePrice: medianSalePrice,
		profit:          medianSalePrice - totalCost,
	}
}

func (p *ProfitOpportunity) OriginName() string       { return p.originName }
func (p *ProfitOpportunity) ReferenceName() string    { return p.referenceName }
func (p *ProfitOpportunity) OriginalRarity() string   { return p.path.OriginalRarity }
func (p *ProfitOpportunity) TargetRarity() string     { return p.path.TargetRarity }
func (p *ProfitOpportunity) DurationHours() float64   { return p.path.Hours }
func (p *ProfitOpportunity) MaterialName() string     { return p.path.Material }
func (p *ProfitOpportunity) MaterialAmount() int      { return p.path.MaterialAmount }
func (p *ProfitOpportunity) MaterialCost() float64    { return p.materialCost }
func (p *ProfitOpportunity) ConversionCost() float64  { return p.conversionCost }
func (p *ProfitOpportunity) TotalCost() float64       { return p.totalCost }
func (p *ProfitOpportunity) MedianSalePrice() float64 { return p.medianSalePrice }
func (p *ProfitOpportunity) Profit() float64          { return p.profit }

// IsProfitable returns true if the median sale price exceeds the total cost
func (p *ProfitOpportunity) IsProfitable() bool {
	return p.profit > 0
}

// SortByProfit orders opportunities by profit, highest first.
// Ties keep their feed order.
func SortByProfit(opportunities []*ProfitOpportunity) {
	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].profit > opportunities[j].profit
	})
}
