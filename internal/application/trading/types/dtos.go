package types

// ProfitOpportunityDTO is a display-ready Kat upgrade opportunity.
// Raw values drive sorting; the *Display fields are presentation only.
type ProfitOpportunityDTO struct {
	OriginName      string  `json:"origin_name"`
	ReferenceName   string  `json:"reference_name"`
	OriginalRarity  string  `json:"original_rarity"`
	TargetRarity    string  `json:"target_rarity"`
	DurationHours   float64 `json:"duration_hours"`
	MaterialName    string  `json:"material_name"`
	MaterialAmount  int     `json:"material_amount"`
	MaterialCost    float64 `json:"material_cost"`
	ConversionCost  float64 `json:"conversion_cost"`
	TotalCost       float64 `json:"total_cost"`
	MedianSalePrice float64 `json:"median_sale_price"`
	Profit          float64 `json:"profit"`

	MaterialCostDisplay    string `json:"material_cost_display"`
	ConversionCostDisplay  string `json:"conversion_cost_display"`
	TotalCostDisplay       string `json:"total_cost_display"`
	MedianSalePriceDisplay string `json:"median_sale_price_display"`
	ProfitDisplay          string `json:"profit_display"`
}

// SupplyMarginDTO is a display-ready low-supply margin entry
type SupplyMarginDTO struct {
	ItemName          string  `json:"item_name"`
	LowestPrice       float64 `json:"lowest_price"`
	SecondLowestPrice float64 `json:"second_lowest_price"`
	MedianPrice       float64 `json:"median_price"`
	Margin            float64 `json:"margin"`
	RealMargin        float64 `json:"real_margin"`

	LowestPriceDisplay       string `json:"lowest_price_display"`
	SecondLowestPriceDisplay string `json:"second_lowest_price_display"`
	MedianPriceDisplay       string `json:"median_price_display"`
	MarginDisplay            string `json:"margin_display"`
	RealMarginDisplay        string `json:"real_margin_display"`
}
